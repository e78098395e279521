package validation

var Positions = []string{
	"Goalkeeper",
	"Defender",
	"Center Back",
	"Full Back",
	"Wing Back",
	"Midfielder",
	"Defensive Midfielder",
	"Central Midfielder",
	"Attacking Midfielder",
	"Forward",
	"Winger",
	"Striker",
}

var PreferredFeet = []string{"left", "right", "both"}

// Countries offered in location pickers.
var Countries = []string{
	"Algeria", "Angola", "Benin", "Botswana", "Burkina Faso", "Burundi",
	"Cameroon", "Cape Verde", "Central African Republic", "Chad", "Comoros",
	"Democratic Republic of the Congo", "Republic of the Congo", "Djibouti",
	"Egypt", "Equatorial Guinea", "Eritrea", "Eswatini", "Ethiopia",
	"Gabon", "Gambia", "Ghana", "Guinea", "Guinea-Bissau", "Ivory Coast",
	"Kenya", "Lesotho", "Liberia", "Libya", "Madagascar", "Malawi", "Mali",
	"Mauritania", "Mauritius", "Morocco", "Mozambique", "Namibia", "Niger",
	"Nigeria", "Rwanda", "São Tomé and Príncipe", "Senegal", "Seychelles",
	"Sierra Leone", "Somalia", "South Africa", "South Sudan", "Sudan",
	"Tanzania", "Togo", "Tunisia", "Uganda", "Zambia", "Zimbabwe",
}

type PlayerForm struct {
	FirstName     string `json:"first_name" validate:"min=2,max=50"`
	LastName      string `json:"last_name" validate:"min=2,max=50"`
	DateOfBirth   string `json:"date_of_birth" validate:"ymd"`
	Position      string `json:"position" validate:"position"`
	PreferredFoot string `json:"preferred_foot,omitempty" validate:"omitempty,oneof=left right both"`
	HeightCm      *int   `json:"height_cm,omitempty" validate:"omitempty,min=100,max=250"`
	WeightKg      *int   `json:"weight_kg,omitempty" validate:"omitempty,min=30,max=150"`
	Country       string `json:"country" validate:"min=2"`
	State         string `json:"state,omitempty"`
	City          string `json:"city,omitempty"`
	SchoolName    string `json:"school_name,omitempty"`
	AcademyID     string `json:"academy_id,omitempty" validate:"omitempty,uuid"`
}

type AcademyForm struct {
	Name        string `json:"name" validate:"min=2,max=100"`
	Description string `json:"description,omitempty"`
	Country     string `json:"country" validate:"min=2"`
	State       string `json:"state,omitempty"`
	City        string `json:"city,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
	FoundedYear *int   `json:"founded_year,omitempty" validate:"omitempty,min=1900,notfutureyear"`
	LogoURL     string `json:"logo_url,omitempty" validate:"omitempty,url"`
}
