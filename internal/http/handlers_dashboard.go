package http

import (
	"net/http"
	"time"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

const (
	tabSecretariat = "secretariat"
	tabProject     = "project"
)

type dashboardPageData struct {
	pageData
	Balances balancesData
}

type balancesData struct {
	Tab       string
	Groups    []core.BankGroup
	LoadError string
}

type summaryModalData struct {
	Account   core.AccountSummary
	Direction string
	StartDate string
	EndDate   string
}

// dashboardTab validates the tab query parameter, falling back to the
// secretariat tab.
func dashboardTab(r *http.Request) string {
	if r.URL.Query().Get("tab") == tabProject {
		return tabProject
	}
	return tabSecretariat
}

// handleDashboard renders the summary screen: tab switcher plus the
// grouped balances accordion for the active tab.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	tab := dashboardTab(r)

	data := dashboardPageData{
		pageData: s.newPageData(r, "Dashboard", "/dashboard"),
		Balances: balancesData{Tab: tab},
	}

	grouped, err := s.api.LoadGroupedAccounts(r.Context(), sess.Token, tab)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Grouped balances load failed",
			log.FieldTab, tab, log.FieldError, err.Error())
		data.Balances.LoadError = errMessage(err)
	} else {
		data.Balances.Groups = core.SortGroups(grouped)
	}
	s.renderPage(w, r, "dashboard.html", data)
}

// handleBalances serves the accordion partial when the user switches tabs.
// Every switch is a fresh fetch; nothing is reused across tabs.
func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	tab := dashboardTab(r)

	data := balancesData{Tab: tab}
	grouped, err := s.api.LoadGroupedAccounts(r.Context(), sess.Token, tab)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Grouped balances load failed",
			log.FieldTab, tab, log.FieldError, err.Error())
		apiErrorResponse(err).Write(w)
		return
	}
	data.Groups = core.SortGroups(grouped)

	body, err := s.renderTemplate("balances.html", data)
	if err != nil {
		ErrorResponse(http.StatusInternalServerError, "Internal server error").Write(w)
		return
	}
	NewHTMXResponse().BodyHTML(string(body)).
		Header("HX-Push-Url", "/dashboard?tab="+tab).
		Write(w)
}

// handleAccountSummary serves the month-to-date drill-down modal for one
// account card.
func (s *Server) handleAccountSummary(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	accountID := queryInt64(r, "accountId")
	if accountID <= 0 {
		BadRequestError("Missing account id").Write(w)
		return
	}
	direction := r.URL.Query().Get("direction")
	if direction != core.Inflow && direction != core.Outflow {
		direction = ""
	}

	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	endDate := now.Format("2006-01-02")

	summary, err := s.api.LoadAccountSummary(r.Context(), sess.Token, accountID, startDate, endDate, direction)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Account summary load failed",
			log.FieldEntityID, accountID, log.FieldError, err.Error())
		apiErrorResponse(err).Write(w)
		return
	}

	body, err := s.renderTemplate("summary_modal.html", summaryModalData{
		Account:   summary,
		Direction: direction,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		ErrorResponse(http.StatusInternalServerError, "Internal server error").Write(w)
		return
	}
	NewHTMXResponse().BodyHTML(string(body)).Write(w)
}
