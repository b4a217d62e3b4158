package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/randusr/internal/models"
	"github.com/desertthunder/randusr/internal/shared"
	tu "github.com/desertthunder/randusr/internal/testing"
)

func TestUsersCommands(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		t.Run("prints and caches fetched users", func(t *testing.T) {
			runner, output, srv := setupRunner(t, tu.SingleUserJSON)

			if err := run(runner, "users", "fetch", "--size", "3"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			for _, want := range []string{"📥 Fetching 3 users", "Ms Gema Herrera", "gema.herrera@example.com", "gema-herrera", "1 user"} {
				if !strings.Contains(result, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, result)
				}
			}

			sizes := srv.Sizes()
			if len(sizes) != 1 || sizes[0] != 3 {
				t.Errorf("expected one request for 3 users, got %v", sizes)
			}
		})

		t.Run("writes JSON without progress lines", func(t *testing.T) {
			runner, output, _ := setupRunner(t, tu.ResultsJSON(
				tu.UserJSON("Ada", "Lovelace", "ada@example.com"),
				tu.UserJSON("Alan", "Turing", "alan@example.com"),
			))

			if err := run(runner, "users", "fetch", "--size", "2", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var users []models.User
			if err := json.Unmarshal(output.Bytes(), &users); err != nil {
				t.Fatalf("expected JSON output, got %q: %v", output.String(), err)
			}
			if len(users) != 2 {
				t.Fatalf("expected 2 users, got %d", len(users))
			}
			if users[0].ID != "ada-lovelace" || users[1].ID != "alan-turing" {
				t.Errorf("expected batch order, got %s, %s", users[0].ID, users[1].ID)
			}
		})

		t.Run("rejects non-positive size before fetching", func(t *testing.T) {
			runner, _, srv := setupRunner(t, tu.SingleUserJSON)

			err := run(runner, "users", "fetch", "--size", "0")

			if !errors.Is(err, shared.ErrInvalidSize) {
				t.Fatalf("expected ErrInvalidSize, got %v", err)
			}
			if err.Error() != "Invalid size" {
				t.Errorf("expected message 'Invalid size', got %q", err.Error())
			}
			if len(srv.Sizes()) != 0 {
				t.Error("expected no request to be made")
			}
		})

		t.Run("reports empty results", func(t *testing.T) {
			runner, _, _ := setupRunner(t, tu.EmptyResultsJSON)

			err := run(runner, "users", "fetch", "--size", "5")

			if !errors.Is(err, shared.ErrEmptyResults) {
				t.Fatalf("expected ErrEmptyResults, got %v", err)
			}
		})

		t.Run("reports upstream failures", func(t *testing.T) {
			runner, _, srv := setupRunner(t, tu.SingleUserJSON)
			srv.Respond(http.StatusInternalServerError, `{"error":"boom"}`)

			err := run(runner, "users", "fetch", "--size", "1")

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("list", func(t *testing.T) {
		t.Run("empty cache", func(t *testing.T) {
			runner, output, srv := setupRunner(t, tu.SingleUserJSON)

			if err := run(runner, "users", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !strings.Contains(output.String(), "No cached users") {
				t.Errorf("expected empty cache hint, got %q", output.String())
			}
			if len(srv.Sizes()) != 0 {
				t.Error("expected list not to fetch")
			}
		})

		t.Run("lists the last batch", func(t *testing.T) {
			runner, output, srv := setupRunner(t, tu.SingleUserJSON)
			if err := run(runner, "users", "fetch", "--size", "1"); err != nil {
				t.Fatalf("fetch failed: %v", err)
			}
			output.Reset()

			if err := run(runner, "users", "list", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var users []models.User
			if err := json.Unmarshal(output.Bytes(), &users); err != nil {
				t.Fatalf("expected JSON output: %v", err)
			}
			if len(users) != 1 || users[0].ID != "gema-herrera" {
				t.Errorf("expected cached gema-herrera, got %+v", users)
			}
			if len(srv.Sizes()) != 1 {
				t.Errorf("expected only the fetch to hit the API, got %v", srv.Sizes())
			}
		})
	})

	t.Run("show", func(t *testing.T) {
		t.Run("prints user detail", func(t *testing.T) {
			runner, output, _ := setupRunner(t, tu.SingleUserJSON)
			if err := run(runner, "users", "fetch", "--size", "1"); err != nil {
				t.Fatalf("fetch failed: %v", err)
			}
			output.Reset()

			if err := run(runner, "users", "show", "gema-herrera"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			for _, want := range []string{
				"Ms Gema Herrera",
				"Email:    gema.herrera@example.com",
				"Address:  2498 Ronda de Toledo, Burgos, Castilla y León Spain, 48420",
				"Birthday: July 17 1948",
				"Avatar:   https://randomuser.me/api/portraits/women/52.jpg",
			} {
				if !strings.Contains(result, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, result)
				}
			}
		})

		t.Run("prints detail as JSON", func(t *testing.T) {
			runner, output, _ := setupRunner(t, tu.SingleUserJSON)
			if err := run(runner, "users", "fetch", "--size", "1"); err != nil {
				t.Fatalf("fetch failed: %v", err)
			}
			output.Reset()

			if err := run(runner, "users", "show", "gema-herrera", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var detail models.UserDetail
			if err := json.Unmarshal(output.Bytes(), &detail); err != nil {
				t.Fatalf("expected JSON output: %v", err)
			}
			if detail.Address.Postcode != "48420" {
				t.Errorf("expected postcode 48420, got %q", detail.Address.Postcode)
			}
		})

		t.Run("unknown user", func(t *testing.T) {
			runner, _, _ := setupRunner(t, tu.SingleUserJSON)

			err := run(runner, "users", "show", "nobody")

			if !errors.Is(err, shared.ErrUserNotFound) {
				t.Fatalf("expected ErrUserNotFound, got %v", err)
			}
			if !strings.Contains(err.Error(), "Can't find user with user id nobody") {
				t.Errorf("unexpected message %q", err.Error())
			}
		})

		t.Run("missing id", func(t *testing.T) {
			runner, _, _ := setupRunner(t, tu.SingleUserJSON)

			err := run(runner, "users", "show")

			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Fatalf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("export", func(t *testing.T) {
		t.Run("writes requested format", func(t *testing.T) {
			runner, output, _ := setupRunner(t, tu.SingleUserJSON)
			if err := run(runner, "users", "fetch", "--size", "1"); err != nil {
				t.Fatalf("fetch failed: %v", err)
			}
			output.Reset()
			path := filepath.Join(t.TempDir(), "out", "users.csv")

			if err := run(runner, "users", "export", "--format", "csv", "--output", path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			tu.AssertFileExists(t, path)
			if content := tu.MustReadFile(t, path); !strings.Contains(content, "gema.herrera@example.com") {
				t.Errorf("expected CSV to contain email, got:\n%s", content)
			}
			if !strings.Contains(output.String(), "Exported 1 user to "+path) {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("rejects unknown format", func(t *testing.T) {
			runner, _, _ := setupRunner(t, tu.SingleUserJSON)
			if err := run(runner, "users", "fetch", "--size", "1"); err != nil {
				t.Fatalf("fetch failed: %v", err)
			}

			err := run(runner, "users", "export", "--format", "xml", "--output", filepath.Join(t.TempDir(), "users.xml"))

			if !errors.Is(err, shared.ErrInvalidFlag) {
				t.Fatalf("expected ErrInvalidFlag, got %v", err)
			}
		})

		t.Run("empty cache", func(t *testing.T) {
			runner, _, _ := setupRunner(t, tu.SingleUserJSON)

			err := run(runner, "users", "export")

			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("avatars with empty cache", func(t *testing.T) {
		runner, output, _ := setupRunner(t, tu.SingleUserJSON)

		if err := run(runner, "users", "avatars", "--dir", t.TempDir()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "No cached users") {
			t.Errorf("expected empty cache hint, got %q", output.String())
		}
	})
}

func TestAPIGet(t *testing.T) {
	t.Run("prints upstream JSON", func(t *testing.T) {
		runner, output, srv := setupRunner(t, tu.SingleUserJSON)

		if err := run(runner, "api", "get", "api?results=2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), `"first": "Gema"`) {
			t.Errorf("expected pretty JSON, got %q", output.String())
		}
		if sizes := srv.Sizes(); len(sizes) != 1 || sizes[0] != 2 {
			t.Errorf("expected path to be forwarded, got %v", sizes)
		}
	})

	t.Run("compact JSON", func(t *testing.T) {
		runner, output, _ := setupRunner(t, tu.SingleUserJSON)

		if err := run(runner, "api", "get", "/api", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), `"first":"Gema"`) {
			t.Errorf("expected compact JSON, got %q", output.String())
		}
	})

	t.Run("non-2xx status", func(t *testing.T) {
		runner, _, srv := setupRunner(t, tu.SingleUserJSON)
		srv.Respond(http.StatusServiceUnavailable, `{"error":"down"}`)

		err := run(runner, "api", "get", "/api")

		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "status 503") {
			t.Errorf("expected status in error, got %v", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		runner, _, _ := setupRunner(t, tu.SingleUserJSON)

		if err := run(runner, "api", "get"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Fatalf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("without API client", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(nil), Output: &strings.Builder{}})

		if err := run(runner, "api", "get", "/api"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestTUIRequiresSource(t *testing.T) {
	runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(nil)})

	if err := run(runner, "tui"); !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}
