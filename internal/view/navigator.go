package view

import (
	"strings"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
)

// View is one screen of the app
type View string

// Views
const (
	Home       View = "home"
	Login      View = "login"
	Register   View = "register"
	Calculator View = "calculator"
)

// Blocking messages shown when the calculator is refused
const (
	MsgLoginRequired = "Você precisa fazer login para acessar a calculadora."
	MsgNotVerified   = "Acesso negado. Você precisa validar seu cadastro através do link enviado para seu e-mail antes de acessar a calculadora."
)

// Event is something that moves the app between views
type Event string

// Events
const (
	EventNavigate          Event = "navigate"
	EventLoginSucceeded    Event = "login_succeeded"
	EventRegisterSucceeded Event = "register_succeeded"
	EventLoggedOut         Event = "logged_out"
)

// Parse maps a view name to a View. Unknown names render the home screen.
func Parse(name string) View {
	switch v := View(strings.ToLower(strings.TrimSpace(name))); v {
	case Home, Login, Register, Calculator:
		return v
	default:
		return Home
	}
}

// Transition is the outcome of one navigation request
type Transition struct {
	From    View   `json:"from"`
	To      View   `json:"to"`
	Blocked bool   `json:"blocked"`
	Message string `json:"message,omitempty"`
}

// Navigate resolves a request to show target. The calculator needs a session
// (else redirect to login) and a verified account (else stay on from).
func Navigate(from, target View, user *contracts.User) Transition {
	if target == Calculator {
		if user == nil {
			return Transition{From: from, To: Login, Blocked: true, Message: MsgLoginRequired}
		}
		if !user.IsVerified {
			return Transition{From: from, To: from, Blocked: true, Message: MsgNotVerified}
		}
	}
	return Transition{From: from, To: target}
}

// Apply resolves any event from the current view
func Apply(from View, ev Event, target View, user *contracts.User) Transition {
	switch ev {
	case EventLoginSucceeded, EventLoggedOut:
		return Transition{From: from, To: Home}
	case EventRegisterSucceeded:
		return Transition{From: from, To: Login}
	default:
		return Navigate(from, target, user)
	}
}

// Navigator tracks the current view of one client
type Navigator struct {
	current View
}

// NewNavigator starts on the home screen
func NewNavigator() *Navigator {
	return &Navigator{current: Home}
}

// Current returns the view being shown
func (n *Navigator) Current() View {
	return n.current
}

// Handle applies ev and moves to the resulting view
func (n *Navigator) Handle(ev Event, target View, user *contracts.User) Transition {
	t := Apply(n.current, ev, target, user)
	n.current = t.To
	return t
}
