// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package flash implements one-time user-facing notices carried in a sealed
// cookie and cleared after the first read.
package flash

import (
	"encoding/hex"
	"fmt"
	"net/http"

	"codeberg.org/oliverandrich/kingcooking/internal/config"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

const cookieName = "_flash"

// Messages holds the pending notices for one render.
type Messages struct {
	Success []string `json:"success,omitempty"`
	Error   []string `json:"error,omitempty"`
}

// Empty reports whether there is nothing to show.
func (m Messages) Empty() bool {
	return len(m.Success) == 0 && len(m.Error) == 0
}

// Store seals and unseals flash cookies.
type Store struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewStore creates a flash store reusing the session keys.
func NewStore(cfg *config.SessionConfig, secure bool) (*Store, error) {
	hashKey, err := hex.DecodeString(cfg.HashKey)
	if cfg.HashKey == "" {
		hashKey = securecookie.GenerateRandomKey(64)
	} else if err != nil {
		return nil, fmt.Errorf("invalid flash hash key: %w", err)
	}

	var blockKey []byte
	if cfg.BlockKey != "" {
		blockKey, err = hex.DecodeString(cfg.BlockKey)
		if err != nil {
			return nil, fmt.Errorf("invalid flash block key: %w", err)
		}
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(300) // flashes do not outlive the next page load by much

	return &Store{codec: codec, secure: secure}, nil
}

// Success queues a success notice for the next render.
func (s *Store) Success(c echo.Context, message string) {
	messages := s.peek(c)
	messages.Success = append(messages.Success, message)
	s.write(c, messages)
}

// Error queues an error notice for the next render.
func (s *Store) Error(c echo.Context, message string) {
	messages := s.peek(c)
	messages.Error = append(messages.Error, message)
	s.write(c, messages)
}

// Pop returns the pending notices and clears them.
func (s *Store) Pop(c echo.Context) Messages {
	messages := s.peek(c)
	if !messages.Empty() {
		c.SetCookie(&http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return messages
}

// peek reads pending notices without clearing, preferring notices queued
// during the current request over the incoming cookie.
func (s *Store) peek(c echo.Context) Messages {
	var messages Messages

	if pending, ok := c.Get("flash_pending").(Messages); ok {
		return pending
	}

	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return messages
	}
	if err := s.codec.Decode(cookieName, cookie.Value, &messages); err != nil {
		return Messages{}
	}
	return messages
}

func (s *Store) write(c echo.Context, messages Messages) {
	c.Set("flash_pending", messages)

	sealed, err := s.codec.Encode(cookieName, messages)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    sealed,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
