package http

import (
	"html/template"
	"net/http"

	"fundboard/internal/api"
	"fundboard/internal/core"
	"fundboard/internal/log"
)

const auditDefaultLimit = 20

type auditFilters struct {
	StartDate string
	EndDate   string
	UserID    int64
	Page      int
	Limit     int
}

type auditPageData struct {
	pageData
	Filters   auditFilters
	Users     []core.User
	Table     template.HTML
	LoadError string
}

type auditTableData struct {
	Filters  auditFilters
	Entries  []core.AuditLog
	HasNext  bool
	PrevPage int
	NextPage int
}

// parseAuditFilters reads the filter controls. An unselected user yields
// UserID 0, which the client omits from the backend query entirely.
func parseAuditFilters(r *http.Request) auditFilters {
	return auditFilters{
		StartDate: sanitizeInput(r.URL.Query().Get("startDate")),
		EndDate:   sanitizeInput(r.URL.Query().Get("endDate")),
		UserID:    queryInt64(r, "user"),
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", auditDefaultLimit),
	}
}

func (f auditFilters) query() api.AuditQuery {
	return api.AuditQuery{
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Page:      f.Page,
		Limit:     f.Limit,
		UserID:    f.UserID,
	}
}

// handleAuditPage renders the audit screen: date range and user filters
// plus the first page of entries.
func (s *Server) handleAuditPage(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	filters := parseAuditFilters(r)

	data := auditPageData{
		pageData: s.newPageData(r, "Audit", "/dashboard/audit"),
		Filters:  filters,
	}

	// The user filter dropdown. A failure here degrades to a date-only
	// filter rather than blanking the whole screen.
	users, err := s.api.LoadUsers(r.Context(), sess.Token)
	if err != nil {
		s.logger.WarnContext(r.Context(), "User filter load failed",
			log.FieldResource, "users", log.FieldError, err.Error())
	} else {
		data.Users = users
	}

	table, err := s.renderAuditTable(r, filters, sess.Token)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Audit listing failed",
			log.FieldOperation, log.OpList, log.FieldError, err.Error())
		data.LoadError = errMessage(err)
	} else {
		data.Table = template.HTML(table)
	}
	s.renderPage(w, r, "audit.html", data)
}

// handleAuditTable serves the filtered entries partial.
func (s *Server) handleAuditTable(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	filters := parseAuditFilters(r)

	table, err := s.renderAuditTable(r, filters, sess.Token)
	if err != nil {
		apiErrorResponse(err).Write(w)
		return
	}
	NewHTMXResponse().BodyHTML(string(table)).Write(w)
}

func (s *Server) renderAuditTable(r *http.Request, filters auditFilters, token string) ([]byte, error) {
	entries, err := s.api.LoadAudit(r.Context(), token, filters.query())
	if err != nil {
		return nil, err
	}
	return s.renderTemplate("audit_table.html", auditTableData{
		Filters:  filters,
		Entries:  entries,
		HasNext:  len(entries) == filters.Limit,
		PrevPage: filters.Page - 1,
		NextPage: filters.Page + 1,
	})
}
