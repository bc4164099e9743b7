// Package seed populates the stores with the default accounts and, when
// enabled, a small set of demo tasks. Seeding is idempotent: existing
// records are left alone.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
)

// Options controls which records are seeded.
type Options struct {
	OwnerPassword string
	GuestPassword string
	DemoData      bool
}

// Run ensures the default owner and guest accounts exist and optionally
// inserts demo tasks into an empty task store.
func Run(ctx context.Context, creds ports.CredentialStore, tasks ports.TaskRepository, opts Options, log zerolog.Logger) error {
	defaults := []struct {
		email    string
		password string
		role     domain.Role
	}{
		{"owner@domain.com", opts.OwnerPassword, domain.RoleOwner},
		{"guest@domain.com", opts.GuestPassword, domain.RoleGuest},
	}

	for _, d := range defaults {
		if err := ensureUser(ctx, creds, d.email, d.password, d.role); err != nil {
			return fmt.Errorf("seed user %s: %w", d.email, err)
		}
	}

	if opts.DemoData {
		if err := ensureDemoTasks(ctx, tasks, log); err != nil {
			return fmt.Errorf("seed tasks: %w", err)
		}
	}

	log.Info().Msg("seed data verified")
	return nil
}

func ensureUser(ctx context.Context, creds ports.CredentialStore, email, password string, role domain.Role) error {
	if _, err := creds.FindByIdentifier(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = creds.Create(ctx, &domain.User{
		Username:     email,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	// A concurrent seeder may have won the race; that still satisfies us.
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	return err
}

func ensureDemoTasks(ctx context.Context, tasks ports.TaskRepository, log zerolog.Logger) error {
	existing, err := tasks.Snapshot(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	demo := []domain.Task{
		{Title: "Review quarterly report", Description: "Go through the Q2 numbers before the board meeting", Priority: domain.PriorityHigh, Category: "Admin", CreatedAt: now},
		{Title: "Reconcile invoices", Description: "Match supplier invoices against purchase orders", Priority: domain.PriorityMedium, Category: "Finance", CreatedAt: now.Add(time.Second)},
		{Title: "Update workstation images", Description: "Roll the new base image out to the office machines", Priority: domain.PriorityLow, Category: "IT", CreatedAt: now.Add(2 * time.Second)},
	}

	for i := range demo {
		if err := tasks.Create(ctx, &demo[i]); err != nil {
			return err
		}
	}

	log.Info().Int("count", len(demo)).Msg("demo tasks inserted")
	return nil
}
