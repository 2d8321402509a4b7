package migration

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Action はマイグレーション操作の種別です。
type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
)

// ParseAction は CLI 引数を Action に変換します。
func ParseAction(raw string) (Action, error) {
	switch a := Action(raw); a {
	case ActionUp, ActionDown, ActionDrop, ActionVersion:
		return a, nil
	case "":
		return ActionUp, nil
	default:
		return "", fmt.Errorf("unsupported action %q", raw)
	}
}

// SourceURL はマイグレーションディレクトリを file:// URL に変換します。
func SourceURL(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	return "file://" + filepath.ToSlash(absDir), nil
}

// Run は dir 配下のマイグレーションを dsn のデータベースに適用します。
func Run(action Action, dir, dsn string) error {
	if _, err := ParseAction(string(action)); err != nil || action == "" {
		return fmt.Errorf("unsupported action %q", action)
	}

	sourceURL, err := SourceURL(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case ActionUp:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case ActionDown:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case ActionDrop:
		return m.Drop()
	case ActionVersion:
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Printf("no migration applied")
				return nil
			}
			return err
		}
		log.Printf("version=%d dirty=%t", version, dirty)
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}
