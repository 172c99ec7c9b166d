package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pizzeria/app/models"
)

func TestOrderState(t *testing.T) {
	tests := []struct {
		name   string
		order  models.Order
		state  models.State
		active bool
	}{
		{"new order", models.Order{Draft: true}, models.StateDraft, false},
		{"sent", models.Order{}, models.StateSent, true},
		{"finished after send", models.Order{Status: true}, models.StateFinished, false},
		{"finished while draft", models.Order{Draft: true, Status: true}, models.StateFinished, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.state, tt.order.State())
			assert.Equal(t, tt.active, tt.order.Active())
		})
	}
}

func TestBeforeCreateAssignsID(t *testing.T) {
	u := &models.User{}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.Len(t, u.ID, 36)

	kept := &models.User{Base: models.Base{ID: "fixed"}}
	assert.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
}

func TestPublicUserHasNoPassword(t *testing.T) {
	u := models.User{Base: models.Base{ID: "u1"}, Name: "Test User", Email: "test@example.com", Password: "$2a$08$hash"}
	assert.Equal(t, models.PublicUser{ID: "u1", Name: "Test User", Email: "test@example.com"}, u.Public())
}
