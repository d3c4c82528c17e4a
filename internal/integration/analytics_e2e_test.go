//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "upahan/internal/adapters/http_server"
	"upahan/internal/app"
	"upahan/internal/domain"
	mysqlstore "upahan/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

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

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=upahan"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(res) })

	dsn := fmt.Sprintf("root:root@tcp(localhost:%s)/upahan?parseTime=true&multiStatements=true", res.GetPort("3306/tcp"))
	var db *sql.DB
	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		var err error
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			return err
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("mysql never became ready: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func seed(t *testing.T, store domain.RecordStore) {
	t.Helper()
	ctx := context.Background()
	put := func(col, id string, doc map[string]any) {
		if err := store.Upsert(ctx, col, id, doc); err != nil {
			t.Fatalf("seed %s/%s: %v", col, id, err)
		}
	}

	put(domain.ColUsers, "o1", map[string]any{"id": "o1", "name": "Aling Nena", "gender": "female", "barangay": "Poblacion"})
	put(domain.ColUsers, "t1", map[string]any{"id": "t1", "name": "Juan"}) // gender only in profile
	put(domain.ColTenantProfiles, "t1", map[string]any{"userId": "t1", "gender": "male"})

	put(domain.ColApplications, "app-o1", map[string]any{"id": "app-o1", "userId": "o1", "barangay": "Poblacion", "status": "approved"})

	put(domain.ColListings, "l1", map[string]any{"id": "l1", "userId": "o1", "barangay": "Poblacion", "availabilityStatus": "Occupied", "propertyType": "Condo", "monthlyRent": 5000.0})
	put(domain.ColListings, "l2", map[string]any{"id": "l2", "userId": "o1", "barangay": "Poblacion", "availabilityStatus": " available ", "propertyType": "Apartment", "monthlyRent": 7000.0})

	put(domain.ColBookings, "b1", map[string]any{"id": "b1", "propertyId": "l1", "tenantId": "t1", "ownerId": "o1", "status": "approved", "paymentStatus": "paid", "totalAmount": 10000.0})
	put(domain.ColBookings, "b2", map[string]any{"id": "b2", "propertyId": "l2", "tenantId": "t1", "ownerId": "o1", "status": "pending", "paymentStatus": "pending", "totalAmount": 0.0})
}

func TestAnalyticsEndToEnd(t *testing.T) {
	db := startMySQL(t)
	store := mysqlstore.New(db)
	seed(t, store)

	reports := app.NewReportService(app.NewAnalytics(store), nil, time.Minute)
	srv := server.New()
	srv.MountHandlers(&server.Handlers{R: reports})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/barangays/Poblacion/analytics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}

	var snap domain.AnalyticsSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if snap.Properties.Total != 2 {
		t.Fatalf("properties: %+v", snap.Properties)
	}
	if snap.Properties.StatusCounts.Occupied != 1 || snap.Properties.StatusCounts.Available != 1 {
		t.Fatalf("status counts: %+v", snap.Properties.StatusCounts)
	}
	if snap.Properties.PropertyTypes["Boarding House"] != 1 {
		t.Fatalf("condo alias not applied: %+v", snap.Properties.PropertyTypes)
	}
	if snap.Bookings.Total != 2 || snap.Bookings.Approved != 1 {
		t.Fatalf("bookings: %+v", snap.Bookings)
	}
	if snap.Tenants.Total != 1 || snap.Tenants.Male != 1 {
		t.Fatalf("tenant demographics: %+v", snap.Tenants)
	}
	if snap.Owners.Total != 1 || snap.Owners.Female != 1 {
		t.Fatalf("owner demographics: %+v", snap.Owners)
	}
	if len(snap.Rankings.TopOwners) != 1 || snap.Rankings.TopOwners[0].PropertyCount != 2 {
		t.Fatalf("rankings: %+v", snap.Rankings.TopOwners)
	}

	// The profile-resolved gender must have been cached back onto the user.
	u, err := store.Get(context.Background(), domain.ColUsers, "t1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u["gender"] != "male" {
		t.Fatalf("gender write-back missing: %+v", u)
	}
}
