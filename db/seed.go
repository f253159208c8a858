package db

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"railshift/models"
	"railshift/repository"
)

// SeedData is the reference data a fresh installation starts from.
type SeedData struct {
	Locations []struct {
		Name string `yaml:"name"`
		Code string `yaml:"code"`
		Type string `yaml:"type"`
	} `yaml:"locations"`
	Reasons []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Type        string `yaml:"type"`
	} `yaml:"reasons"`
	Roles []struct {
		Name      string `yaml:"name"`
		ShortName string `yaml:"short_name"`
	} `yaml:"roles"`
	Products []struct {
		Name  string   `yaml:"name"`
		Roles []string `yaml:"roles"`
	} `yaml:"products"`
	Locomotives []struct {
		Name   string `yaml:"name"`
		Number string `yaml:"number"`
		Status string `yaml:"status"`
	} `yaml:"locomotives"`
}

func LoadSeed(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("db: seed: read %s: %w", path, err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*SeedData, error) {
	var s SeedData
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("db: seed: parse: %w", err)
	}
	return &s, nil
}

func isEmpty[T any](ctx context.Context, s repository.Store[T]) (bool, error) {
	_, total, err := s.List(ctx, models.ListQuery{Limit: 1})
	return total == 0, err
}

// Seed inserts each section only when its store is still empty, so it is
// safe to run on every start.
func Seed(ctx context.Context, repos *repository.Repositories, data *SeedData, logger *zap.Logger) error {
	if empty, err := isEmpty(ctx, repos.Locations); err != nil {
		return err
	} else if empty {
		for _, l := range data.Locations {
			if err := repos.Locations.Create(ctx, &models.Location{Name: l.Name, Code: l.Code, Type: l.Type}); err != nil {
				return fmt.Errorf("db: seed: location %q: %w", l.Name, err)
			}
		}
		logger.Info("seeded locations", zap.Int("count", len(data.Locations)))
	}

	if empty, err := isEmpty(ctx, repos.Reasons); err != nil {
		return err
	} else if empty {
		for _, r := range data.Reasons {
			if err := repos.Reasons.Create(ctx, &models.Reason{Name: r.Name, Description: r.Description, Type: r.Type}); err != nil {
				return fmt.Errorf("db: seed: reason %q: %w", r.Name, err)
			}
		}
		logger.Info("seeded reasons", zap.Int("count", len(data.Reasons)))
	}

	if empty, err := isEmpty(ctx, repos.Locomotives); err != nil {
		return err
	} else if empty {
		for _, l := range data.Locomotives {
			if err := repos.Locomotives.Create(ctx, &models.Locomotive{Name: l.Name, Number: l.Number, Status: l.Status}); err != nil {
				return fmt.Errorf("db: seed: locomotive %q: %w", l.Name, err)
			}
		}
		logger.Info("seeded locomotives", zap.Int("count", len(data.Locomotives)))
	}

	empty, err := isEmpty(ctx, repos.Roles)
	if err != nil || !empty {
		return err
	}
	roleIDs := make(map[string]int64, len(data.Roles))
	for _, r := range data.Roles {
		role := &models.Role{Name: r.Name, ShortName: r.ShortName}
		if err := repos.Roles.Create(ctx, role); err != nil {
			return fmt.Errorf("db: seed: role %q: %w", r.Name, err)
		}
		roleIDs[strings.ToLower(r.Name)] = role.ID
	}
	logger.Info("seeded roles", zap.Int("count", len(data.Roles)))

	if empty, err := isEmpty(ctx, repos.Products); err != nil || !empty {
		return err
	}
	for _, p := range data.Products {
		product := &models.Product{Name: p.Name, Roles: []models.ProductRole{}}
		for _, name := range p.Roles {
			id, ok := roleIDs[strings.ToLower(name)]
			if !ok {
				return fmt.Errorf("db: seed: product %q references unknown role %q", p.Name, name)
			}
			product.Roles = append(product.Roles, models.ProductRole{RoleID: id, Name: name})
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return fmt.Errorf("db: seed: product %q: %w", p.Name, err)
		}
	}
	logger.Info("seeded products", zap.Int("count", len(data.Products)))
	return nil
}
