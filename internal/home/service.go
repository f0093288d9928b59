package home

import "context"

// Service provides business logic for the landing page.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Get returns the page with at most limit highlights. A limit of zero or
// less returns all of them.
func (s *Service) Get(ctx context.Context, limit int) (Content, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return Content{}, err
	}
	if c.Highlights == nil {
		c.Highlights = []Highlight{}
	}
	if limit > 0 && limit < len(c.Highlights) {
		c.Highlights = c.Highlights[:limit]
	}
	return c, nil
}
