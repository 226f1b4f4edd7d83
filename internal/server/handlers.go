package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hywnj/cursor-todo/internal/app"
	"github.com/hywnj/cursor-todo/internal/calendar"
	"github.com/hywnj/cursor-todo/internal/logging"
	"github.com/hywnj/cursor-todo/internal/todo"
)

// loginPage is the data for login.html.
type loginPage struct {
	Flash string
}

// dayPage is the data for day.html.
type dayPage struct {
	Title    string
	Flash    string
	View     app.View
	IsToday  bool
	Prev     todo.Day
	Next     todo.Day
	Month    calendar.Month
	Weekdays []string
}

// controller resolves the browser session cookie to its controller. A
// missing or expired session redirects to the login page and reports
// false.
func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*app.Controller, string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, "", false
	}

	ctrl, ok := s.sessions.Get(cookie.Value)
	if !ok {
		s.clearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, "", false
	}

	// The watcher may have signed the account out behind our back.
	if ctrl.State() == app.StateUnauthenticated {
		s.sessions.Remove(cookie.Value)
		s.clearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, "", false
	}

	return ctrl, cookie.Value, true
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if _, ok := s.sessions.Get(cookie.Value); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	s.render(w, "login.html", loginPage{Flash: takeFlash(w, r)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	ctrl := s.newController()
	if err := ctrl.SignIn(r.Context(), email, password); err != nil {
		ctrl.Close()
		setFlash(w, alertMessage(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id := s.sessions.Put(ctrl)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.logger.Info("browser session created",
		logging.Operation("server.login"),
		logging.AccountHash(email),
	)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if ctrl, ok := s.sessions.Get(cookie.Value); ok {
			ctrl.SignOut(r.Context())
			s.sessions.Remove(cookie.Value)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	ctrl, _, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.renderDay(w, r, ctrl, todo.Today(time.Now()))
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	ctrl, _, ok := s.controller(w, r)
	if !ok {
		return
	}

	day, err := todo.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		// Malformed dates land on today rather than erroring.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderDay(w, r, ctrl, day)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctrl, _, ok := s.controller(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	now := time.Now()
	day := todo.Today(now)
	if parsed, err := todo.ParseDay(r.PostFormValue("day")); err == nil {
		day = parsed
	}

	// Adds on today take the current moment; adds on any other viewed
	// day are pinned to that day's local midnight so they bucket there.
	var pin *todo.Day
	if day != todo.Today(now) {
		pin = &day
	}

	if err := ctrl.Add(r.Context(), r.PostFormValue("title"), pin); err != nil {
		setFlash(w, alertMessage(err))
	}
	http.Redirect(w, r, dayPath(day, now), http.StatusSeeOther)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctrl, _, ok := s.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.Toggle(r.Context(), chi.URLParam(r, "id")); err != nil {
		setFlash(w, alertMessage(err))
	}
	s.redirectBack(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctrl, _, ok := s.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		setFlash(w, alertMessage(err))
	}
	s.redirectBack(w, r)
}

// redirectBack returns to the day the form was posted from.
func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	day := todo.Today(now)
	if parsed, err := todo.ParseDay(r.PostFormValue("day")); err == nil {
		day = parsed
	}
	http.Redirect(w, r, dayPath(day, now), http.StatusSeeOther)
}

func (s *Server) renderDay(w http.ResponseWriter, r *http.Request, ctrl *app.Controller, day todo.Day) {
	now := time.Now()
	today := todo.Today(now)
	view := ctrl.SnapshotFor(day, now)

	title := fmt.Sprintf("%d년 %d월 %d일", day.Year, int(day.Month), day.Day)
	if day == today {
		title = "오늘의 할 일"
	}

	s.render(w, "day.html", dayPage{
		Title:    title,
		Flash:    takeFlash(w, r),
		View:     view,
		IsToday:  day == today,
		Prev:     day.AddDays(-1),
		Next:     day.AddDays(1),
		Month:    calendar.MonthOf(day, today),
		Weekdays: calendar.Weekdays,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render failed",
			logging.Operation("server.render"),
			logging.Err(err),
		)
	}
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func alertMessage(err error) string {
	var alert *app.AlertError
	if errors.As(err, &alert) {
		return alert.Message
	}
	return "요청을 처리하지 못했습니다."
}

// dayPath is the canonical URL for a day: today is "/", everything else
// is "/2006-01-02".
func dayPath(day todo.Day, now time.Time) string {
	if day == todo.Today(now) {
		return "/"
	}
	return "/" + day.String()
}
