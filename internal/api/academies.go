package api

import (
	"context"
	"net/url"
	"scout-client/internal/domain"
)

type ListAcademiesParams struct {
	Page    int
	PerPage int
	Query   string
	Country string
}

func (p ListAcademiesParams) Values() url.Values {
	v := url.Values{}
	setInt(v, "page", p.Page)
	setInt(v, "per_page", p.PerPage)
	setString(v, "q", p.Query)
	setString(v, "country", p.Country)
	return v
}

type AcademyList struct {
	Academies []domain.Academy `json:"academies"`
	Total     int              `json:"total"`
}

type AcademiesService struct {
	gw *Gateway
}

func NewAcademiesService(gw *Gateway) *AcademiesService {
	return &AcademiesService{gw: gw}
}

func (s *AcademiesService) List(ctx context.Context, params ListAcademiesParams) (*AcademyList, error) {
	list, err := unwrap(Get[Envelope[AcademyList]](ctx, s.gw, "/admin/academies", params.Values(), true))
	if err != nil {
		return nil, err
	}
	return &list, nil
}

type academyData struct {
	Academy domain.Academy `json:"academy"`
}

func (s *AcademiesService) Get(ctx context.Context, id string) (*domain.Academy, error) {
	data, err := unwrap(Get[Envelope[academyData]](ctx, s.gw, "/admin/academies/"+url.PathEscape(id), nil, true))
	if err != nil {
		return nil, err
	}
	return &data.Academy, nil
}

func (s *AcademiesService) Create(ctx context.Context, academy domain.Academy) (*domain.Academy, error) {
	data, err := unwrap(Post[Envelope[academyData]](ctx, s.gw, "/admin/academies", academy, true))
	if err != nil {
		return nil, err
	}
	return &data.Academy, nil
}

func (s *AcademiesService) Update(ctx context.Context, id string, academy domain.Academy) (*domain.Academy, error) {
	data, err := unwrap(Put[Envelope[academyData]](ctx, s.gw, "/admin/academies/"+url.PathEscape(id), academy, true))
	if err != nil {
		return nil, err
	}
	return &data.Academy, nil
}

func (s *AcademiesService) Delete(ctx context.Context, id string) error {
	_, err := unwrap(Delete[Envelope[struct{}]](ctx, s.gw, "/admin/academies/"+url.PathEscape(id), true))
	return err
}
