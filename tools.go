//go:build tools

// Package tools pins the versions of the developer tools this repository
// runs, so `go run <pkg>` resolves through go.mod:
//
//	golangci-lint  lint
//	goose          ad-hoc migrations against internal/database/migrations
//	sqlc           regenerates internal/database/generated from sqlc.yaml
//	swag           regenerates docs/ from handler annotations
//	mockery        optional mock generation for service interfaces
//	benchstat      compares pricing benchmark runs
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/sqlc-dev/sqlc/cmd/sqlc"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
	_ "golang.org/x/perf/cmd/benchstat"
)
