package api

import (
	"fmt"
	"time"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/exchange"
	"github.com/alexanderramin/plangrid/internal/store"
)

type projectReq struct {
	Code          *string `json:"code"`
	Name          *string `json:"name"`
	GroupID       *string `json:"groupId"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	Row           *int    `json:"row"`
	ColorOverride *string `json:"colorOverride"`
}

func (r projectReq) patch() (domain.ProjectPatch, error) {
	p := domain.ProjectPatch{
		Code:          r.Code,
		Name:          r.Name,
		GroupID:       r.GroupID,
		Row:           r.Row,
		ColorOverride: r.ColorOverride,
	}
	var err error
	if p.StartDate, err = parseDatePtr("startDate", r.StartDate); err != nil {
		return p, err
	}
	if p.EndDate, err = parseDatePtr("endDate", r.EndDate); err != nil {
		return p, err
	}
	return p, nil
}

func (r projectReq) project() (domain.Project, error) {
	patch, err := r.patch()
	if err != nil {
		return domain.Project{}, err
	}
	return domain.Project{}.Apply(patch), nil
}

type spanReq struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Row       *int   `json:"row"`
}

func (r spanReq) dates() (time.Time, time.Time, error) {
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate("endDate", r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

type groupReq struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type planningReq struct {
	Name string `json:"name"`
}

type selectionReq struct {
	ProjectID *string `json:"projectId"`
	CardIndex *int    `json:"cardIndex"`
}

type selectionResp struct {
	ProjectID string `json:"projectId"`
	CardIndex int    `json:"cardIndex"`
}

type projectResp struct {
	exchange.ProjectDTO
	Color string `json:"color"`
}

type cellResp struct {
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type cardResp struct {
	Index      int        `json:"index"`
	Title      string     `json:"title"`
	StartIndex int        `json:"startIndex"`
	EndIndex   int        `json:"endIndex"`
	Cells      []cellResp `json:"cells"`
}

type reconciliationResp struct {
	ProjectID string `json:"projectId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Adjusted  bool   `json:"adjusted"`
}

type planningResp struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ProjectCount int       `json:"projectCount"`
	GroupCount   int       `json:"groupCount"`
	Active       bool      `json:"active"`
}

type importResp struct {
	Format   string `json:"format"`
	Projects int    `json:"projects"`
	Groups   int    `json:"groups"`
}

func parseDate(field, s string) (time.Time, error) {
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", errBadRequest, field, err)
	}
	return t, nil
}

func parseDatePtr(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toCells(cells []calendar.Cell) []cellResp {
	out := make([]cellResp, 0, len(cells))
	for _, c := range cells {
		out = append(out, cellResp{
			Index: c.Index,
			Start: domain.FormatDate(c.Start),
			End:   domain.FormatDate(c.End),
			Label: c.Label,
		})
	}
	return out
}

func toCards(cards []calendar.Card) []cardResp {
	out := make([]cardResp, 0, len(cards))
	for i, c := range cards {
		out = append(out, cardResp{
			Index:      i,
			Title:      c.Title,
			StartIndex: c.StartIndex,
			EndIndex:   c.EndIndex,
			Cells:      toCells(c.Cells),
		})
	}
	return out
}

func toPlannings(summaries []store.PlanningSummary) []planningResp {
	out := make([]planningResp, 0, len(summaries))
	for _, p := range summaries {
		out = append(out, planningResp{
			ID:           p.ID,
			Name:         p.Name,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
			ProjectCount: p.ProjectCount,
			GroupCount:   p.GroupCount,
			Active:       p.Active,
		})
	}
	return out
}

func toReconciliations(results []store.Reconciliation) []reconciliationResp {
	out := make([]reconciliationResp, 0, len(results))
	for _, r := range results {
		out = append(out, reconciliationResp{
			ProjectID: r.ProjectID,
			StartDate: domain.FormatDate(r.Start),
			EndDate:   domain.FormatDate(r.End),
			Adjusted:  r.Adjusted,
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
