package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/scout/internal/plan"
	"github.com/MikeSquared-Agency/scout/internal/processor"
	"github.com/MikeSquared-Agency/scout/internal/research"
)

type researchRequest struct {
	Company string `json:"company"`
}

type researchResponse struct {
	Profile  research.EntityProfile   `json:"profile"`
	News     []research.ArticleRecord `json:"news"`
	Conflict *string                  `json:"conflict"`
}

type continueRequest struct {
	Message string `json:"message"`
}

type generatePlanRequest struct {
	Company string          `json:"company"`
	Profile json.RawMessage `json:"profile"`
	News    json.RawMessage `json:"news"`
}

type updateSectionRequest struct {
	Plan    json.RawMessage `json:"plan"`
	Section string          `json:"section"`
	Content string          `json:"content"`
}

type updateSectionResponse struct {
	Plan *plan.AccountPlan `json:"plan"`
}

// research handles POST /research
func (s *Server) research(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := s.proc.Research(r.Context(), sessionID(r), req.Company)
	if errors.Is(err, processor.ErrEmptyEntity) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("research failed", "company", req.Company, "error", err)
		writeError(w, http.StatusInternalServerError, "research failed")
		return
	}

	writeJSON(w, http.StatusOK, researchResponse{
		Profile:  result.Profile,
		News:     result.News,
		Conflict: result.Conflict,
	})
}

// continueChat handles POST /continue
func (s *Server) continueChat(w http.ResponseWriter, r *http.Request) {
	var req continueRequest
	if !decode(w, r, &req) {
		return
	}

	reply, err := s.proc.Continue(r.Context(), sessionID(r), req.Message)
	if err != nil {
		slog.Error("continue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load conversation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// generatePlan handles POST /generate_account_plan
func (s *Server) generatePlan(w http.ResponseWriter, r *http.Request) {
	var req generatePlanRequest
	if !decode(w, r, &req) {
		return
	}
	profile := research.DecodeProfile(req.Profile)
	news := research.DecodeArticles(req.News)
	writeJSON(w, http.StatusOK, s.proc.GeneratePlan(req.Company, profile, news))
}

// updateSection handles POST /update_plan_section
func (s *Server) updateSection(w http.ResponseWriter, r *http.Request) {
	var req updateSectionRequest
	if !decode(w, r, &req) {
		return
	}
	current := plan.New()
	if len(req.Plan) > 0 {
		if err := json.Unmarshal(req.Plan, current); err != nil {
			slog.Warn("ignoring malformed plan", "error", err)
			current = plan.New()
		}
	}
	updated := s.proc.UpdateSection(current, req.Section, req.Content)
	writeJSON(w, http.StatusOK, updateSectionResponse{Plan: updated})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return false
	}
	return true
}
