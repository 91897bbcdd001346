package db

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alvarots/checkauto/internal/catalog"
	"github.com/alvarots/checkauto/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestInsertVehicle_NilCollection(t *testing.T) {
	store := &Store{Catalog: catalog.Default()}
	_, err := store.InsertVehicle(context.Background(), models.Vehicle{})
	if err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestFindVehicles_NilCollection(t *testing.T) {
	store := &Store{Catalog: catalog.Default()}
	_, err := store.FindVehicles(context.Background(), "user")
	if err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestFindVehicleByID_InvalidID(t *testing.T) {
	store := &Store{Catalog: catalog.Default()}
	_, err := store.FindVehicleByID(context.Background(), "user", "not-an-object-id")
	if err == nil {
		t.Error("expected error for invalid ID")
	}
}

func TestSortRecordsByDateDesc(t *testing.T) {
	records := []models.ServiceRecord{
		{Date: "2023-01-10T00:00:00Z", Mileage: 100},
		{Date: "garbage", Mileage: 999},
		{Date: "2024-03-05T00:00:00Z", Mileage: 300},
		{Date: "2023-06-20T00:00:00Z", Mileage: 200},
	}

	sortRecordsByDateDesc(records)

	if records[0].Mileage != 300 || records[1].Mileage != 200 || records[2].Mileage != 100 {
		t.Errorf("unexpected order: %+v", records)
	}
	if records[3].Mileage != 999 {
		t.Error("unparseable dates should sort last")
	}
}

// Integration test (requires running MongoDB)
func TestStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" || uri == "mongodb://bad:uri" {
		t.Skip("MONGO_URI not set, skipping integration test")
		return
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("failed to ping: %v, skipping integration test", err)
		return
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "checkauto_test"
	}
	store := NewStore(client.Database(dbName), catalog.Default())

	vehicle, err := store.InsertVehicle(ctx, models.Vehicle{
		UserID:         "integration-user",
		Make:           "Seat",
		Model:          "Leon",
		Year:           2018,
		CurrentMileage: 50000,
	})
	if err != nil {
		t.Fatalf("insert vehicle: %v", err)
	}

	configs, err := store.FindConfigsByVehicle(ctx, "integration-user", vehicle.ID.Hex())
	if err != nil {
		t.Fatalf("find configs: %v", err)
	}
	if len(configs) == 0 {
		t.Error("expected default configs to be seeded")
	}
	for _, c := range configs {
		if c.HasKnownHistory() {
			t.Errorf("default config %s should have unknown history", c.Category)
		}
	}

	if err := store.DeleteVehicle(ctx, "integration-user", vehicle.ID.Hex()); err != nil {
		t.Errorf("cascade delete: %v", err)
	}
	remaining, _ := store.FindConfigsByVehicle(ctx, "integration-user", vehicle.ID.Hex())
	if len(remaining) != 0 {
		t.Errorf("expected configs removed by cascade, found %d", len(remaining))
	}
}
