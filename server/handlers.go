package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/etnz/pocketpilot"
	"github.com/etnz/pocketpilot/sheets"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Profile)
}

func (s *Server) handleMonthPlan(w http.ResponseWriter, r *http.Request) {
	var req pocketpilot.PlanRequest
	if err := decode(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	if req.Mode == "" {
		req.Mode = s.cfg.Profile.DefaultMode
	}

	plan, err := pocketpilot.BuildMonthPlan(req)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	if err := s.cfg.Sheets.Append(r.Context(), pocketpilot.TabBudgetMonthly, plan.Record(req)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	var batch pocketpilot.TransactionBatch
	if err := decode(r, &batch); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	for i, t := range batch.Items {
		if err := t.Validate(); err != nil {
			writeDetail(w, http.StatusBadRequest, "item %d: %v", i, err)
			return
		}
	}

	// Best effort: items written before a failure stay committed.
	for i, t := range batch.Items {
		if err := s.cfg.Sheets.Append(r.Context(), pocketpilot.TabTransactions, t.Record()); err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"detail":   fmt.Sprintf("item %d: %v", i, err),
				"inserted": i,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]int{"inserted": len(batch.Items)})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	var req pocketpilot.HoldingsUpdate
	if err := decode(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	for i, h := range req.Items {
		if err := h.Validate(); err != nil {
			writeDetail(w, http.StatusBadRequest, "item %d: %v", i, err)
			return
		}
	}

	var updated, inserted int
	for i, h := range req.Items {
		res, err := s.cfg.Sheets.Upsert(r.Context(), pocketpilot.TabHoldings,
			pocketpilot.HoldingKeyField, h.Name, h.Record(req.AsOf))
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"detail":   fmt.Sprintf("item %d: %v", i, err),
				"updated":  updated,
				"inserted": inserted,
			})
			return
		}
		if res.Action == sheets.ActionUpdated {
			updated++
		} else {
			inserted++
		}
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated, "inserted": inserted})
}

func (s *Server) handleNetWorthSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap pocketpilot.Snapshot
	if err := decode(r, &snap); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	if snap.Date.IsZero() {
		writeDetail(w, http.StatusBadRequest, "snapshot has no date")
		return
	}
	if err := s.cfg.Sheets.Append(r.Context(), pocketpilot.TabNetWorthSnapshots, snap.Record()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"net_worth": snap.NetWorth()})
}

func (s *Server) handleMonthClose(w http.ResponseWriter, r *http.Request) {
	var c pocketpilot.MonthClose
	if err := decode(r, &c); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	if c.Month.IsZero() {
		writeDetail(w, http.StatusBadRequest, "close has no month")
		return
	}
	if err := s.cfg.Sheets.Append(r.Context(), pocketpilot.TabPerformanceMonthly, c.Record()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":    c.Month,
		"win_rate": float64(c.WinRate()),
	})
}

func (s *Server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Sheets.ReadRow(r.Context(), pocketpilot.TabSettings, pocketpilot.SettingsRow)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pocketpilot.SettingsFromRecord(rec))
}

func (s *Server) handleSettingsPut(w http.ResponseWriter, r *http.Request) {
	var rec sheets.Record
	if err := decode(r, &rec); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	if err := s.cfg.Sheets.MergeRow(r.Context(), pocketpilot.TabSettings, pocketpilot.SettingsRow, rec); err != nil {
		writeError(w, err)
		return
	}
	merged, err := s.cfg.Sheets.ReadRow(r.Context(), pocketpilot.TabSettings, pocketpilot.SettingsRow)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pocketpilot.SettingsFromRecord(merged))
}

func (s *Server) handleGoalsGet(w http.ResponseWriter, r *http.Request) {
	records, err := s.cfg.Sheets.ReadAll(r.Context(), pocketpilot.TabGoals)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": records})
}

func (s *Server) handleGoalsPost(w http.ResponseWriter, r *http.Request) {
	var goal pocketpilot.Goal
	if err := decode(r, &goal); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	if err := goal.Validate(); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	res, err := s.cfg.Sheets.Upsert(r.Context(), pocketpilot.TabGoals,
		pocketpilot.GoalKeyField, goal.Name, goal.Record())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleYearPlanGet(w http.ResponseWriter, r *http.Request) {
	fy := strings.TrimSpace(r.URL.Query().Get("fy"))
	if fy == "" {
		writeDetail(w, http.StatusBadRequest, "missing fy query parameter")
		return
	}
	records, err := s.cfg.Sheets.ReadAll(r.Context(), pocketpilot.TabPlanYear)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, rec := range records {
		year, _ := rec[pocketpilot.YearPlanKeyField].(string)
		if strings.TrimSpace(year) == fy {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeError(w, &sheets.NotFoundError{Tab: pocketpilot.TabPlanYear, Key: fy})
}

func (s *Server) handleYearPlanPost(w http.ResponseWriter, r *http.Request) {
	var plan pocketpilot.YearPlan
	if err := decode(r, &plan); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	if err := plan.Validate(); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	res, err := s.cfg.Sheets.Upsert(r.Context(), pocketpilot.TabPlanYear,
		pocketpilot.YearPlanKeyField, plan.FiscalYear, plan.Record())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNotionMonthPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month              pocketpilot.Month `json:"month"`
		NotionParentPageID string            `json:"notion_parent_page_id"`
		SheetURL           string            `json:"sheet_url"`
	}
	if err := decode(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	}
	if req.Month.IsZero() {
		writeDetail(w, http.StatusBadRequest, "missing month")
		return
	}
	if s.cfg.Notion == nil {
		writeDetail(w, http.StatusInternalServerError, "notion token not configured")
		return
	}
	parent := req.NotionParentPageID
	if parent == "" {
		parent = s.cfg.NotionParentPageID
	}
	if parent == "" {
		writeDetail(w, http.StatusInternalServerError, "notion parent page id not configured")
		return
	}
	sheetURL := req.SheetURL
	if sheetURL == "" {
		sheetURL = s.cfg.SheetURL
	}

	page, err := s.cfg.Notion.CreateMonthPage(r.Context(), req.Month.String(), parent, sheetURL)
	if err != nil {
		writeDetail(w, http.StatusBadGateway, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":    req.Month,
		"page_id":  page.ID,
		"page_url": page.URL,
	})
}
