package http

import (
	"net/http"
	"time"

	"fundboard/internal/log"
	"fundboard/internal/session"
)

type loginPageData struct {
	Title string
}

// handleIndex serves the login screen, or forwards straight to the
// dashboard when a live session already exists.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cookieName); err == nil && cookie.Value != "" {
		if _, ok, err := s.sessions.Get(r.Context(), cookie.Value); err == nil && ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}
	s.renderPage(w, r, "login.html", loginPageData{Title: "Sign in"})
}

// handleLogin exchanges credentials for a backend token and opens a
// server-side session. The token itself never reaches the browser; only
// the opaque session cookie does.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	email := formValue(r, "email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		msg := "Email and password are required"
		UnprocessableEntityError(msg).TriggerErrorNotification(msg).Write(w)
		return
	}

	result, err := s.api.Login(r.Context(), email, password)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Login failed",
			log.FieldOperation, log.OpLogin, log.FieldError, err.Error())
		if s.collector != nil {
			s.collector.ObserveLogin("failure")
		}
		apiErrorResponse(err).Write(w)
		return
	}

	sess, err := s.sessions.Create(r.Context(), result.Token, result.User)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Session creation failed",
			log.FieldOperation, log.OpLogin, log.FieldError, err.Error())
		ErrorResponse(http.StatusInternalServerError, "Could not start a session. Please try again.").
			TriggerErrorNotification("Could not start a session. Please try again.").Write(w)
		return
	}

	if s.collector != nil {
		s.collector.ObserveLogin("success")
		s.collector.SessionOpened()
	}
	s.logger.InfoContext(r.Context(), "Login succeeded",
		log.FieldOperation, log.OpLogin,
		log.FieldSessionID, sess.ID,
		log.FieldUserRole, string(result.User.Role))

	s.setSessionCookie(w, sess)
	s.redirect(w, r, "/dashboard")
}

// handleLogout destroys the session and returns to the login screen.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if err := s.sessions.Destroy(r.Context(), sess.ID); err != nil {
		s.logger.WarnContext(r.Context(), "Session destroy failed",
			log.FieldOperation, log.OpLogout, log.FieldSessionID, sess.ID, log.FieldError, err.Error())
	}
	if s.collector != nil {
		s.collector.SessionClosed()
	}
	s.clearSessionCookie(w)
	s.redirect(w, r, "/")
}

// redirect answers an HTMX request with HX-Redirect and everything else
// with a plain 303.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sess session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
