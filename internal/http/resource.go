package http

import (
	"context"
	"html/template"
	"net/http"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

// pageData carries the shell every full page renders: role-filtered
// navigation plus the signed-in profile.
type pageData struct {
	Title  string
	Active string
	Nav    []core.NavItem
	User   core.User
}

func (s *Server) newPageData(r *http.Request, title, active string) pageData {
	sess := currentSession(r)
	return pageData{
		Title:  title,
		Active: active,
		Nav:    core.VisibleNav(sess.User.Role),
		User:   sess.User,
	}
}

// resourceView is the static description a template needs to address a
// managed resource's endpoints and DOM ids.
type resourceView struct {
	Name       string // url segment and DOM id prefix
	Singular   string // notification noun, e.g. "Bank"
	Title      string // page heading
	Base       string // "/dashboard/<name>"
	Searchable bool   // render a client-side filter box
}

// resourceSpec binds one managed resource to the API client. The list,
// form and mutation closures close over the typed client methods so the
// handlers below stay generic.
type resourceSpec struct {
	resourceView
	tableTmpl string
	formTmpl  string

	// load fetches the rows and returns the table template's data.
	load func(ctx context.Context, token string) (interface{}, error)
	// formData assembles the modal form's data; id 0 means a blank form.
	formData func(ctx context.Context, token string, id int64) (interface{}, error)
	// parse validates the submitted form. A non-nil error is the
	// user-facing message and means the backend is never called.
	parse func(r *http.Request) (interface{}, error)

	create func(ctx context.Context, token string, payload interface{}) error
	update func(ctx context.Context, token string, id int64, payload interface{}) error
	remove func(ctx context.Context, token string, id int64) error
}

type resourcePageData struct {
	pageData
	Res       resourceView
	Table     template.HTML
	LoadError string
}

type resourceTableData struct {
	Res  resourceView
	Data interface{}
}

// renderTable renders the rows partial for the resource's current listing.
func (s *Server) renderTable(ctx context.Context, res resourceSpec, token string) ([]byte, error) {
	data, err := res.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.renderTemplate(res.tableTmpl, resourceTableData{Res: res.resourceView, Data: data})
}

// handleResourcePage serves the full management screen. A failed listing
// still renders the page, with the error shown in place of the rows.
func (s *Server) handleResourcePage(res resourceSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		page := resourcePageData{
			pageData: s.newPageData(r, res.Title, res.Base),
			Res:      res.resourceView,
		}

		table, err := s.renderTable(r.Context(), res, sess.Token)
		if err != nil {
			s.logger.WarnContext(r.Context(), "Listing failed",
				log.FieldResource, res.Name, log.FieldOperation, log.OpList, log.FieldError, err.Error())
			page.LoadError = errMessage(err)
		} else {
			page.Table = template.HTML(table)
		}
		s.renderPage(w, r, "resource.html", page)
	}
}

// handleResourceTable serves the rows partial used for refreshes.
func (s *Server) handleResourceTable(res resourceSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		table, err := s.renderTable(r.Context(), res, sess.Token)
		if err != nil {
			apiErrorResponse(err).Write(w)
			return
		}
		NewHTMXResponse().BodyHTML(string(table)).Write(w)
	}
}

// handleResourceForm serves the create/edit modal.
func (s *Server) handleResourceForm(res resourceSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		id := queryInt64(r, "id")

		data, err := res.formData(r.Context(), sess.Token, id)
		if err != nil {
			apiErrorResponse(err).Write(w)
			return
		}
		body, err := s.renderTemplate(res.formTmpl, data)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Template rendering failed",
				log.FieldResource, res.Name, "template", res.formTmpl, log.FieldError, err.Error())
			ErrorResponse(http.StatusInternalServerError, "Internal server error").Write(w)
			return
		}
		NewHTMXResponse().BodyHTML(string(body)).Write(w)
	}
}

// handleResourceSave creates or updates depending on the posted id. A
// validation failure answers without touching the backend; a success
// closes the modal, toasts, and swaps in freshly loaded rows.
func (s *Server) handleResourceSave(res resourceSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resp := ParseFormOrFail(r); resp != nil {
			resp.Write(w)
			return
		}
		sess := currentSession(r)

		payload, err := res.parse(r)
		if err != nil {
			UnprocessableEntityError(err.Error()).TriggerErrorNotification(err.Error()).Write(w)
			return
		}

		id := formInt64(r, "id")
		verb, op := "created", log.OpCreate
		if id > 0 {
			verb, op = "updated", log.OpUpdate
			err = res.update(r.Context(), sess.Token, id, payload)
		} else {
			err = res.create(r.Context(), sess.Token, payload)
		}
		if err != nil {
			s.logger.WarnContext(r.Context(), "Mutation failed",
				log.FieldResource, res.Name, log.FieldOperation, op, log.FieldError, err.Error())
			apiErrorResponse(err).Write(w)
			return
		}

		resp := NewHTMXResponse().
			TriggerSuccessNotification(res.Singular + " " + verb + " successfully").
			TriggerModalClose()

		table, loadErr := s.renderTable(r.Context(), res, sess.Token)
		if loadErr != nil {
			// The write landed; only the refresh failed. Keep the stale rows.
			resp.NoSwap().TriggerErrorNotification(errMessage(loadErr)).Write(w)
			return
		}
		resp.BodyHTML(string(table)).Write(w)
	}
}

// handleResourceConfirm serves the delete confirmation modal.
func (s *Server) handleResourceConfirm(res resourceSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := queryInt64(r, "id")
		if id <= 0 {
			BadRequestError("Missing id").Write(w)
			return
		}
		data := struct {
			Res   resourceView
			ID    int64
			Label string
		}{Res: res.resourceView, ID: id, Label: formValue(r, "name")}

		body, err := s.renderTemplate("confirm.html", data)
		if err != nil {
			ErrorResponse(http.StatusInternalServerError, "Internal server error").Write(w)
			return
		}
		NewHTMXResponse().BodyHTML(string(body)).Write(w)
	}
}

// handleResourceDelete removes a row. On failure the rows stay as they
// are and only an error toast is shown.
func (s *Server) handleResourceDelete(res resourceSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resp := ParseFormOrFail(r); resp != nil {
			resp.Write(w)
			return
		}
		sess := currentSession(r)

		id := formInt64(r, "id")
		if id <= 0 {
			BadRequestError("Missing id").Write(w)
			return
		}

		if err := res.remove(r.Context(), sess.Token, id); err != nil {
			s.logger.WarnContext(r.Context(), "Delete failed",
				log.FieldResource, res.Name, log.FieldOperation, log.OpDelete, log.FieldError, err.Error())
			apiErrorResponse(err).TriggerModalClose().Write(w)
			return
		}

		resp := NewHTMXResponse().
			TriggerSuccessNotification(res.Singular + " deleted successfully").
			TriggerModalClose()

		table, loadErr := s.renderTable(r.Context(), res, sess.Token)
		if loadErr != nil {
			resp.NoSwap().TriggerErrorNotification(errMessage(loadErr)).Write(w)
			return
		}
		resp.BodyHTML(string(table)).Write(w)
	}
}
