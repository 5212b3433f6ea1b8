// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package email_test

import (
	"testing"

	"codeberg.org/oliverandrich/kingcooking/internal/config"
	"codeberg.org/oliverandrich/kingcooking/internal/services/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	svc, err := email.NewService(&config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@example.com",
	}, "http://localhost:8080/")

	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestNewService_MissingHost(t *testing.T) {
	_, err := email.NewService(&config.SMTPConfig{
		From: "noreply@example.com",
	}, "http://localhost:8080")

	assert.Error(t, err)
}

func TestNewService_MissingFrom(t *testing.T) {
	_, err := email.NewService(&config.SMTPConfig{
		Host: "smtp.example.com",
	}, "http://localhost:8080")

	assert.Error(t, err)
}
