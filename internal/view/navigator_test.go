package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
)

func TestNavigate_Calculator(t *testing.T) {
	verified := &contracts.User{ID: "1", IsVerified: true}
	unverified := &contracts.User{ID: "2"}

	tests := []struct {
		name        string
		from        View
		user        *contracts.User
		wantTo      View
		wantBlocked bool
		wantMessage string
	}{
		{"logged out redirects to login", Home, nil, Login, true, MsgLoginRequired},
		{"unverified stays put", Home, unverified, Home, true, MsgNotVerified},
		{"unverified stays on register", Register, unverified, Register, true, MsgNotVerified},
		{"verified enters", Home, verified, Calculator, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Navigate(tt.from, Calculator, tt.user)
			assert.Equal(t, tt.from, got.From)
			assert.Equal(t, tt.wantTo, got.To)
			assert.Equal(t, tt.wantBlocked, got.Blocked)
			assert.Equal(t, tt.wantMessage, got.Message)
		})
	}
}

func TestNavigate_OpenViews(t *testing.T) {
	for _, target := range []View{Home, Login, Register} {
		got := Navigate(Calculator, target, nil)
		assert.Equal(t, target, got.To)
		assert.False(t, got.Blocked)
	}
}

func TestApply_Events(t *testing.T) {
	tests := []struct {
		ev   Event
		from View
		want View
	}{
		{EventLoginSucceeded, Login, Home},
		{EventRegisterSucceeded, Register, Login},
		{EventLoggedOut, Calculator, Home},
	}

	for _, tt := range tests {
		t.Run(string(tt.ev), func(t *testing.T) {
			got := Apply(tt.from, tt.ev, "", nil)
			assert.Equal(t, tt.want, got.To)
			assert.False(t, got.Blocked)
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, Calculator, Parse("calculator"))
	assert.Equal(t, Login, Parse(" LOGIN "))
	assert.Equal(t, Home, Parse("settings"))
	assert.Equal(t, Home, Parse(""))
}

func TestNavigator_Flow(t *testing.T) {
	n := NewNavigator()
	assert.Equal(t, Home, n.Current())

	n.Handle(EventNavigate, Calculator, nil)
	assert.Equal(t, Login, n.Current())

	n.Handle(EventNavigate, Register, nil)
	n.Handle(EventRegisterSucceeded, "", nil)
	assert.Equal(t, Login, n.Current())

	user := &contracts.User{ID: "1"}
	n.Handle(EventLoginSucceeded, "", user)
	assert.Equal(t, Home, n.Current())

	t1 := n.Handle(EventNavigate, Calculator, user)
	assert.True(t, t1.Blocked)
	assert.Equal(t, Home, n.Current())

	user.IsVerified = true
	n.Handle(EventNavigate, Calculator, user)
	assert.Equal(t, Calculator, n.Current())

	n.Handle(EventLoggedOut, "", nil)
	assert.Equal(t, Home, n.Current())
}

func TestCarousel(t *testing.T) {
	assert.Equal(t, 1, NextSlide(0, 5))
	assert.Equal(t, 0, NextSlide(4, 5))
	assert.Equal(t, 4, PrevSlide(0, 5))
	assert.Equal(t, 2, PrevSlide(3, 5))
	assert.Equal(t, 0, NextSlide(3, 0))
	assert.Equal(t, 0, PrevSlide(3, 0))
}
