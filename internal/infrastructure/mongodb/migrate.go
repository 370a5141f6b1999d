package mongodb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// RunMigrations applies the JSON command migrations in dir (unique indexes on
// users.email, users.googleId and refresh_tokens.token). It opens its own
// connection because closing a migrate instance disconnects its client.
func RunMigrations(databaseURL, dir string, logger *logrus.Logger) error {
	m, err := migrate.New(fmt.Sprintf("file://%s", dir), databaseURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}

// migrationURL sets the URI path to dbName. The migrate driver reads the
// database from the path only, while the store falls back to a default name.
// Multi-host seed lists are not valid net/url hosts, so the URI is split by
// hand.
func migrationURL(uri, dbName string) (string, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || rest == "" {
		return "", errors.New("mongodb: malformed uri")
	}
	if dbName == "" {
		return "", errors.New("mongodb: no database name to migrate")
	}
	hosts, tail, hasPath := strings.Cut(rest, "/")
	var query string
	if hasPath {
		_, query, _ = strings.Cut(tail, "?")
	} else {
		hosts, query, _ = strings.Cut(hosts, "?")
	}
	out := scheme + "://" + hosts + "/" + dbName
	if query != "" {
		out += "?" + query
	}
	return out, nil
}
