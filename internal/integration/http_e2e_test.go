//go:build integration || !unit

package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"wandr_ingest/internal/adapters/csvfile"
	server "wandr_ingest/internal/adapters/http_server"
	redisad "wandr_ingest/internal/adapters/redis"
	"wandr_ingest/internal/app"
	mysqlrepo "wandr_ingest/internal/storage/mysql"
)

// ---------- helpers ----------
func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestHTTP_EndToEnd_UploadAndRead(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=wandr",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/wandr?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	// In-process redis for the read-side cache
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)

	repo := mysqlrepo.New(db)
	imp := app.NewImportService(csvfile.New(), repo, cache, 0)
	q := app.NewQueryService(repo, cache, time.Minute)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{Imp: imp, Q: q, UploadDir: t.TempDir()})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// Upload one export file
	csvBody := "Reservation Number,Traveller name,Property,Channel,Booking Status,Room Type,Arrival Date,Departure Date,Gross Amount\n" +
		"R1,Jane,Settl. Pisa A,GO MMT,Booked,Dorm,01 Jan 2024,03 Jan 2024,\"1,234.50\"\n" +
		"R2,Bob,Settl. Pisa A,Agoda,Cancel,Dorm,02 Jan 2024,04 Jan 2024,900\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "export.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(csvBody)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/uploads", &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("upload status %d", res.StatusCode)
	}
	var upload struct {
		Success            bool `json:"success"`
		ProcessedRowsCount int  `json:"processedRowsCount"`
		SkippedRowsCount   int  `json:"skippedRowsCount"`
	}
	if err := json.NewDecoder(res.Body).Decode(&upload); err != nil {
		t.Fatalf("decode upload: %v", err)
	}
	if !upload.Success || upload.ProcessedRowsCount != 2 || upload.SkippedRowsCount != 0 {
		t.Fatalf("unexpected upload response: %+v", upload)
	}

	// Read one booking back: aliases and mappings applied end to end
	res, err = http.Get(ts.URL + "/v1/bookings/R1")
	if err != nil {
		t.Fatalf("GET booking: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("booking status %d", res.StatusCode)
	}
	var bv struct {
		Hotel       string  `json:"Hotel"`
		Channel     string  `json:"Channel"`
		Status      string  `json:"Status"`
		GrossAmount float64 `json:"GrossAmount"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bv); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if bv.Hotel != "Wandr Centauri" || bv.Channel != "MMT" || bv.Status != "Confirmed" {
		t.Fatalf("unexpected booking view: %+v", bv)
	}
	if bv.GrossAmount != 1234.50 {
		t.Fatalf("gross amount = %v", bv.GrossAmount)
	}

	// Hotel summary reflects the single resolved property
	res, err = http.Get(ts.URL + "/v1/hotels")
	if err != nil {
		t.Fatalf("GET hotels: %v", err)
	}
	defer res.Body.Close()
	var hotels []struct {
		Name         string `json:"name"`
		BookingCount int    `json:"bookingCount"`
	}
	if err := json.NewDecoder(res.Body).Decode(&hotels); err != nil {
		t.Fatalf("decode hotels: %v", err)
	}
	if len(hotels) != 1 || hotels[0].Name != "Wandr Centauri" || hotels[0].BookingCount != 2 {
		t.Fatalf("unexpected hotels: %+v", hotels)
	}
}
