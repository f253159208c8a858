package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"railshift/handlers"
	"railshift/models"
	"railshift/repository"
	"railshift/routes"
	"railshift/storage"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func newServer(t *testing.T) (*httptest.Server, *repository.Repositories) {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	docs, err := storage.NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)
	api := handlers.NewAPI(handlers.Deps{Repos: repos, Documents: docs, Logger: zap.NewNop()})
	srv := httptest.NewServer(routes.NewRouter(api, zap.NewNop(), ""))
	t.Cleanup(srv.Close)
	return srv, repos
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shiftctl dev")
}

func TestDaysCmd(t *testing.T) {
	out, err := run(t, "days", "2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-28\n2024-02-29\n2024-03-01\n", out)

	out, err = run(t, "days", "2024-06-08")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-08\n", out)

	_, err = run(t, "days", "2024-06-09", "2024-06-08")
	assert.Error(t, err)
}

func TestReasonsList(t *testing.T) {
	srv, repos := newServer(t)
	ctx := context.Background()
	for _, name := range []string{"Brake defect", "Late train", "Brake test"} {
		require.NoError(t, repos.Reasons.Create(ctx, &models.Reason{Name: name}))
	}

	out, err := run(t, "--base-url", srv.URL, "reasons", "list", "--search", "brake")
	require.NoError(t, err)
	assert.Contains(t, out, "Brake defect")
	assert.Contains(t, out, "Brake test")
	assert.NotContains(t, out, "Late train")
	assert.Contains(t, out, "2 of 2")

	out, err = run(t, "--base-url", srv.URL, "reasons", "list", "--limit", "1", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "3 of 3")
}

func TestWagonsListFiltersByStatus(t *testing.T) {
	srv, repos := newServer(t)
	ctx := context.Background()
	require.NoError(t, repos.Wagons.Create(ctx, &models.Wagon{WagonNumber: "318012345678", Status: models.WagonStatusDamaged}))
	require.NoError(t, repos.Wagons.Create(ctx, &models.Wagon{WagonNumber: "318099999999", Status: models.WagonStatusEmpty}))

	out, err := run(t, "--base-url", srv.URL, "wagons", "list", "--status", "damaged")
	require.NoError(t, err)
	assert.Contains(t, out, "31 80 1234 567 8")
	assert.NotContains(t, out, "31 80 9999 999 9")
}

func TestLocomotivesList(t *testing.T) {
	srv, repos := newServer(t)
	require.NoError(t, repos.Locomotives.Create(context.Background(), &models.Locomotive{Name: "Vectron", Number: "193 301"}))

	out, err := run(t, "--base-url", srv.URL, "locomotives", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Vectron")
	assert.Contains(t, out, "193 301")
}

func TestManifestCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/usn-shifts/7/manifest" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "m.pdf")
	out, err := run(t, "--base-url", srv.URL, "manifest", "7", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	_, err = run(t, "--base-url", srv.URL, "manifest", "8", "-o", path)
	assert.Error(t, err)

	_, err = run(t, "manifest", "x")
	assert.EqualError(t, err, `invalid usn shift id "x"`)
}
