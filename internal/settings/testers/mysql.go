// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package testers

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/tomtom215/nmsconsole/internal/settings"
)

// MySQLConfig builds a driver config from the MYSQL_* settings.
func MySQLConfig(v settings.Values) (*mysql.Config, error) {
	host := v.String("MYSQL_HOST")
	if host == "" {
		return nil, fmt.Errorf("MYSQL_HOST is not set")
	}
	port, err := v.Int("MYSQL_PORT")
	if err != nil {
		return nil, err
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.User = v.String("MYSQL_USER")
	cfg.Passwd = v.String("MYSQL_PASSWORD")
	cfg.DBName = v.String("MYSQL_DATABASE")
	return cfg, nil
}

// TestMySQL opens a connection with the candidate credentials and pings it.
func TestMySQL(ctx context.Context, v settings.Values) (string, error) {
	cfg, err := MySQLConfig(v)
	if err != nil {
		return "", err
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL configuration: %w", err)
	}
	db := sql.OpenDB(connector)
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("connect to MySQL at %s: %w", cfg.Addr, err)
	}

	var version string
	if err := db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&version); err != nil {
		return fmt.Sprintf("Connected to %s", cfg.Addr), nil
	}
	return fmt.Sprintf("Connected to MySQL %s at %s", version, cfg.Addr), nil
}
