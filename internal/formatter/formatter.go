// package formatter provides functions to export cached users to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/randusr/internal/models"
	"github.com/desertthunder/randusr/internal/shared"
)

// Supported export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// Formats lists the accepted values of the --format flag.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

var csvHeaders = []string{
	"ID", "Title", "First Name", "Last Name", "Gender", "Email", "Birthday", "Nationality",
	"Street", "City", "State", "Country", "Postcode", "Thumbnail",
}

// ExportToCSV converts users and their addresses to CSV with one row per user.
func ExportToCSV(details []models.UserDetail) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, d := range details {
		record := []string{
			d.User.ID,
			d.User.Title,
			d.User.FirstName,
			d.User.LastName,
			d.User.Gender,
			d.User.Email,
			d.User.BirthDate().Format(time.DateOnly),
			d.User.Nationality,
			d.Address.Street,
			d.Address.City,
			d.Address.State,
			d.Address.Country,
			d.Address.Postcode,
			d.User.Thumbnail,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts users to a Markdown document with a summary table.
func ExportToMarkdown(details []models.UserDetail) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Users\n\n")
	buf.WriteString(fmt.Sprintf("**Count**: %d\n\n", len(details)))

	if len(details) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Name | Email | Birthday | Address |\n")
	buf.WriteString("|---|------|-------|----------|---------|\n")
	for i, d := range details {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1,
			escapeCell(d.User.DisplayName()),
			escapeCell(d.User.Email),
			d.User.FormattedBirthday(),
			escapeCell(d.Address.String()),
		))
	}

	return buf.Bytes(), nil
}

// ExportToText converts users to a numbered plain text listing.
func ExportToText(details []models.UserDetail) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Users: %d\n\n", len(details)))
	for i, d := range details {
		buf.WriteString(fmt.Sprintf("%d. %s <%s>\n", i+1, d.User.FullName(), d.User.Email))
		buf.WriteString(fmt.Sprintf("   %s\n", d.Address.String()))
		buf.WriteString(fmt.Sprintf("   Born %s\n", d.User.FormattedBirthday()))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts users to a JSON array of {"user", "address"} objects.
func ExportToJSON(details []models.UserDetail, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(details, pretty)
}

// Export renders details in the named format.
func Export(details []models.UserDetail, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(details)
	case FormatMarkdown:
		return ExportToMarkdown(details)
	case FormatText:
		return ExportToText(details)
	case FormatJSON, "":
		return ExportToJSON(details, true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (expected one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch format {
	case FormatMarkdown:
		return "md"
	case FormatCSV, FormatText:
		return format
	default:
		return FormatJSON
	}
}

// WriteExport renders details and writes them to path.
//
// Defaults to users.{ext} in the working directory.
func WriteExport(details []models.UserDetail, format, path string) (string, error) {
	if path == "" {
		path = "users." + Extension(format)
	}

	data, err := Export(details, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}

// WriteManifest writes v as indented JSON to path.
func WriteManifest(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes.
//
// A nil client uses one with a 30 second timeout.
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// SaveImage downloads url to path and returns the number of bytes written.
func SaveImage(ctx context.Context, client *http.Client, url, path string) (int, error) {
	data, err := DownloadImage(ctx, client, url)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to save image: %w", err)
	}
	return len(data), nil
}

// AvatarFilename builds the file name for a user's avatar, keeping the remote extension.
func AvatarFilename(userID, url string) string {
	ext := filepath.Ext(url)
	if ext == "" || len(ext) > 5 || strings.ContainsAny(ext, "?/") {
		ext = ".jpg"
	}
	return userID + ext
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// FormatCount renders n with a singular or plural noun, e.g. "1 user", "3 users".
func FormatCount(n int, noun string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
