package formatter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/randusr/internal/models"
	"github.com/desertthunder/randusr/internal/shared"
	th "github.com/desertthunder/randusr/internal/testing"
)

func sampleDetails() []models.UserDetail {
	return []models.UserDetail{
		{
			User: models.User{
				ID: "gema-herrera", Title: "Ms", FirstName: "Gema", LastName: "Herrera",
				Gender: "female", Email: "gema.herrera@example.com", Nationality: "ES",
				Thumbnail: "https://randomuser.me/api/portraits/women/52.jpg", Birthday: -677126243,
			},
			Address: models.Address{
				UserID: "gema-herrera", Street: "2498 Ronda de Toledo", City: "Burgos",
				State: "Castilla y León", Country: "Spain", Postcode: "48420",
			},
		},
		{
			User: models.User{
				ID: "ada-lovelace", Title: "Mrs", FirstName: "Ada", LastName: "Lovelace",
				Gender: "female", Email: "ada@example.com", Nationality: "GB", Birthday: 0,
			},
			Address: models.Address{
				UserID: "ada-lovelace", Street: "12 St James's Square", City: "London",
				State: "Greater London", Country: "United Kingdom", Postcode: "SW1Y 4JH",
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleDetails())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
		}
		if !strings.HasPrefix(lines[0], "ID,Title,First Name,Last Name") {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if !strings.Contains(lines[1], "gema-herrera") || !strings.Contains(lines[1], "1948-07-17") {
			t.Errorf("CSV row missing id or birthday: %s", lines[1])
		}
		if !strings.Contains(lines[2], `"12 St James's Square"`) && !strings.Contains(lines[2], "12 St James's Square") {
			t.Errorf("CSV row missing street: %s", lines[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleDetails())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Users") {
			t.Error("Markdown missing title")
		}
		if !strings.Contains(output, "**Count**: 2") {
			t.Error("Markdown missing count")
		}
		if !strings.Contains(output, "| 1 | Ms Gema Herrera | gema.herrera@example.com | July 17 1948 |") {
			t.Errorf("Markdown missing first row, got:\n%s", output)
		}
		if !strings.Contains(output, "2498 Ronda de Toledo, Burgos, Castilla y León Spain, 48420") {
			t.Error("Markdown missing address")
		}
	})

	t.Run("ExportToMarkdown Empty", func(t *testing.T) {
		data, err := ExportToMarkdown(nil)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if strings.Contains(string(data), "| # |") {
			t.Error("expected no table for empty export")
		}
	})

	t.Run("ExportToMarkdown Escapes Pipes", func(t *testing.T) {
		details := sampleDetails()[:1]
		details[0].Address.Street = "1 | 2 Street"
		data, _ := ExportToMarkdown(details)
		if !strings.Contains(string(data), `1 \| 2 Street`) {
			t.Errorf("expected escaped pipe, got:\n%s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleDetails())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Users: 2") {
			t.Error("Text missing count")
		}
		if !strings.Contains(output, "1. Gema Herrera <gema.herrera@example.com>") {
			t.Error("Text missing first user")
		}
		if !strings.Contains(output, "Born January 01 1970") {
			t.Error("Text missing second birthday")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleDetails(), false)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded []models.UserDetail
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded) != 2 || decoded[0].Address.Postcode != "48420" {
			t.Errorf("unexpected decoded export %+v", decoded)
		}
	})
}

func TestExport(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{FormatJSON, `"user"`},
		{"", `"user"`},
		{FormatCSV, "ID,Title"},
		{FormatMarkdown, "# Users"},
		{FormatText, "Users: 2"},
	}

	for _, tt := range tests {
		t.Run("Format "+tt.format, func(t *testing.T) {
			data, err := Export(sampleDetails(), tt.format)
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("expected output to contain %q", tt.want)
			}
		})
	}

	t.Run("Unknown Format", func(t *testing.T) {
		_, err := Export(sampleDetails(), "xml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("Explicit Path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "out.csv")

		written, err := WriteExport(sampleDetails(), FormatCSV, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}
		th.AssertFileExists(t, path)
		if !strings.Contains(th.MustReadFile(t, path), "gema-herrera") {
			t.Error("exported file missing user")
		}
	})

	t.Run("Default Path", func(t *testing.T) {
		original := th.MustGetwd(t)
		th.MustChdir(t, t.TempDir())
		defer th.MustChdir(t, original)

		written, err := WriteExport(sampleDetails(), FormatMarkdown, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if written != "users.md" {
			t.Errorf("expected users.md, got %s", written)
		}
		th.AssertFileExists(t, written)
	})

	t.Run("Unwritable Path", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := WriteExport(sampleDetails(), FormatText, filepath.Join(blocker, "out.txt")); err == nil {
			t.Error("expected error writing beneath a regular file")
		}
	})
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(map[string]int{"downloaded": 2}, path); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}
	if !strings.Contains(th.MustReadFile(t, path), `"downloaded": 2`) {
		t.Error("manifest missing content")
	}

	if err := WriteManifest(make(chan int), path); err == nil {
		t.Error("expected marshal error for channel")
	}
}

func TestDownloadImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("fake-jpeg"))
		}))
		defer server.Close()

		data, err := DownloadImage(ctx, nil, server.URL+"/a.jpg")
		if err != nil {
			t.Fatalf("DownloadImage failed: %v", err)
		}
		if string(data) != "fake-jpeg" {
			t.Errorf("unexpected body %q", data)
		}
	})

	t.Run("Empty URL", func(t *testing.T) {
		if _, err := DownloadImage(ctx, nil, ""); err == nil {
			t.Error("expected error for empty URL")
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := DownloadImage(ctx, nil, server.URL)
		if err == nil || !strings.Contains(err.Error(), "status 404") {
			t.Errorf("expected status error, got %v", err)
		}
	})

	t.Run("Transport Error", func(t *testing.T) {
		client := &http.Client{Transport: th.NewMockRoundTripper(nil, errors.New("boom"))}
		if _, err := DownloadImage(ctx, client, "http://example.com/a.jpg"); err == nil {
			t.Error("expected transport error")
		}
	})

	t.Run("Body Read Error", func(t *testing.T) {
		client := &http.Client{Transport: th.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusOK,
			Body:       &th.FCloser{},
			Header:     http.Header{},
		}, nil)}
		_, err := DownloadImage(ctx, client, "http://example.com/a.jpg")
		if err == nil || !strings.Contains(err.Error(), "failed to read image data") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("SaveImage", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("png"))
		}))
		defer server.Close()

		path := filepath.Join(t.TempDir(), "a.png")
		n, err := SaveImage(ctx, nil, server.URL, path)
		if err != nil {
			t.Fatalf("SaveImage failed: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 bytes, got %d", n)
		}
		th.AssertFileExists(t, path)
	})
}

func TestHelpers(t *testing.T) {
	t.Run("Extension", func(t *testing.T) {
		cases := map[string]string{FormatJSON: "json", FormatCSV: "csv", FormatMarkdown: "md", FormatText: "txt", "": "json"}
		for format, want := range cases {
			if got := Extension(format); got != want {
				t.Errorf("Extension(%q) = %q, want %q", format, got, want)
			}
		}
	})

	t.Run("AvatarFilename", func(t *testing.T) {
		cases := []struct{ url, want string }{
			{"https://randomuser.me/api/portraits/women/52.jpg", "gema-herrera.jpg"},
			{"https://example.com/avatar.png?s=128", "gema-herrera.jpg"},
			{"https://example.com/avatar", "gema-herrera.jpg"},
			{"https://example.com/a.webp", "gema-herrera.webp"},
		}
		for _, c := range cases {
			if got := AvatarFilename("gema-herrera", c.url); got != c.want {
				t.Errorf("AvatarFilename(%q) = %q, want %q", c.url, got, c.want)
			}
		}
	})

	t.Run("FormatCount", func(t *testing.T) {
		if got := FormatCount(1, "user"); got != "1 user" {
			t.Errorf("got %q", got)
		}
		if got := FormatCount(3, "user"); got != "3 users" {
			t.Errorf("got %q", got)
		}
	})
}
