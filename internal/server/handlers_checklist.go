package server

import (
	"net/http"

	"github.com/jonathan/placement-readiness/internal/checklist"
)

type checklistItemView struct {
	checklist.Item
	Passed bool `json:"passed"`
}

type checklistView struct {
	Items     []checklistItemView `json:"items"`
	Passed    int                 `json:"passed"`
	Total     int                 `json:"total"`
	AllPassed bool                `json:"all_passed"`
}

func newChecklistView(state checklist.State) checklistView {
	items := make([]checklistItemView, 0, len(checklist.Items))
	for _, item := range checklist.Items {
		items = append(items, checklistItemView{Item: item, Passed: state[item.ID]})
	}
	return checklistView{
		Items:     items,
		Passed:    state.PassedCount(),
		Total:     len(checklist.Items),
		AllPassed: state.AllPassed(),
	}
}

// handleGetChecklist returns the test checklist state
func (s *Server) handleGetChecklist(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, newChecklistView(s.checklist.State(r.Context())))
}

// handleToggleChecklistItem flips one checklist item
func (s *Server) handleToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	state, err := s.checklist.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newChecklistView(state))
}

// handleResetChecklist unchecks every item
func (s *Server) handleResetChecklist(w http.ResponseWriter, r *http.Request) {
	state, err := s.checklist.Reset(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newChecklistView(state))
}
