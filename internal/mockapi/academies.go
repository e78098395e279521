package mockapi

import (
	"net/http"
	"scout-client/internal/constants"
	"scout-client/internal/domain"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

func (s *Server) findAcademyLocked(id string) int {
	return slices.IndexFunc(s.academies, func(a domain.Academy) bool { return a.ID == id })
}

func (s *Server) handleListAcademies(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", constants.DefaultPage)
	perPage := queryInt(r, "per_page", constants.DefaultPageSize)
	q := strings.ToLower(r.URL.Query().Get("q"))
	country := r.URL.Query().Get("country")

	s.mu.RLock()
	matched := make([]domain.Academy, 0, len(s.academies))
	for _, a := range s.academies {
		if q != "" && !strings.Contains(strings.ToLower(a.Name), q) {
			continue
		}
		if country != "" && !strings.EqualFold(a.Country, country) {
			continue
		}
		matched = append(matched, a)
	}
	s.mu.RUnlock()

	results, pagination := paginate(matched, page, perPage)
	writeData(w, http.StatusOK, map[string]any{"academies": results, "total": pagination.Total})
}

func (s *Server) handleGetAcademy(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.findAcademyLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Academy not found")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"academy": s.academies[i]})
}

func validateAcademy(a domain.Academy) map[string][]string {
	fields := map[string][]string{}
	if len(a.Name) < 2 {
		fields["name"] = []string{"Academy name must be at least 2 characters"}
	}
	if a.Country == "" {
		fields["country"] = []string{"Country is required"}
	}
	return fields
}

func (s *Server) handleCreateAcademy(w http.ResponseWriter, r *http.Request) {
	var a domain.Academy
	if !decode(w, r, &a) {
		return
	}
	if fields := validateAcademy(a); len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}
	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt, a.UpdatedAt = now, now

	s.mu.Lock()
	s.academies = append(s.academies, a)
	s.mu.Unlock()

	writeData(w, http.StatusCreated, map[string]any{"academy": a})
}

func (s *Server) handleUpdateAcademy(w http.ResponseWriter, r *http.Request) {
	var a domain.Academy
	if !decode(w, r, &a) {
		return
	}
	if fields := validateAcademy(a); len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findAcademyLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Academy not found")
		return
	}
	a.ID = s.academies[i].ID
	a.CreatedAt = s.academies[i].CreatedAt
	a.UpdatedAt = time.Now().UTC()
	s.academies[i] = a
	writeData(w, http.StatusOK, map[string]any{"academy": a})
}

func (s *Server) handleDeleteAcademy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findAcademyLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Academy not found")
		return
	}
	s.academies = slices.Delete(s.academies, i, i+1)
	writeMessage(w, "Academy deleted")
}
