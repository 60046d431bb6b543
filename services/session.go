package services

import (
	"fmt"

	"github.com/yeremiapane/acai-pdv/models"
)

// Login makes user the active operator and moves to the role's home view.
func (l *Ledger) Login(user models.User) {
	_ = l.mutate(func() ([]Event, error) {
		u := user
		l.currentUser = &u
		l.authenticated = true
		l.view = models.DefaultView(user.Role)
		return []Event{{Type: EventSessionChanged}}, nil
	})
}

// Logout ends the session and drops the cart.
func (l *Ledger) Logout() {
	_ = l.mutate(func() ([]Event, error) {
		l.currentUser = nil
		l.authenticated = false
		l.view = models.ViewLogin
		l.cart = nil
		return []Event{{Type: EventSessionChanged}, {Type: EventCartChanged}}, nil
	})
}

func (l *Ledger) CurrentUser() (models.User, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentUser == nil {
		return models.User{}, false
	}
	return *l.currentUser, true
}

func (l *Ledger) IsAuthenticated() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.authenticated
}

func (l *Ledger) CurrentView() models.View {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view
}

// SetCurrentView switches screens. Back-office views need an admin.
func (l *Ledger) SetCurrentView(view models.View) error {
	return l.mutate(func() ([]Event, error) {
		if !view.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidView, view)
		}
		if view != models.ViewLogin && !l.authenticated {
			return nil, ErrNotAuthenticated
		}
		if view.AdminOnly() && (l.currentUser == nil || l.currentUser.Role != models.RoleAdmin) {
			return nil, ErrViewForbidden
		}
		l.view = view
		return []Event{{Type: EventViewChanged}}, nil
	})
}
