// Command reconcile_savings recomputes each user's savings counter from
// their completed, accrued transactions and rewrites it. It is the
// out-of-band repair path for purchases whose savings increment failed
// after the transaction record was persisted.
//
// Usage:
//
//	MONGODB_URI=... MONGODB_DATABASE=... go run ./cmd/scripts [-dry-run]
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/nebulanet/topup-backend/internal/environment"
	"github.com/nebulanet/topup-backend/internal/models"
	"github.com/nebulanet/topup-backend/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report drift without writing")
	flag.Parse()

	_ = godotenv.Load()
	uri := environment.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := environment.GetEnv("MONGODB_DATABASE", "nebulanet")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongodb.NewClient(ctx, uri)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)
	users := db.Collection("users")
	transactions := db.Collection("transactions")

	cursor, err := users.Find(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	defer cursor.Close(ctx)

	reconciled := 0
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			log.Printf("Skipping undecodable user: %v", err)
			continue
		}

		// sum savings over completed transactions whose accrual was
		// claimed; unclaimed completed ones are claimed here too, since
		// the rewrite below makes the counter authoritative again
		txCursor, err := transactions.Find(ctx, bson.M{
			"userId": user.ID,
			"status": models.StatusCompleted,
		})
		if err != nil {
			log.Printf("Failed to load transactions for %s: %v", user.Email, err)
			continue
		}

		expected := 0.0
		var unclaimed []string
		for txCursor.Next(ctx) {
			var tx models.Transaction
			if err := txCursor.Decode(&tx); err != nil {
				continue
			}
			expected += tx.Savings()
			if !tx.SavingsAccrued {
				unclaimed = append(unclaimed, tx.Reference)
			}
		}
		txCursor.Close(ctx)

		drift := expected - user.TotalSavings
		if drift == 0 && len(unclaimed) == 0 {
			continue
		}

		log.Printf("user %s: counter %.2f, expected %.2f (drift %.2f, %d unclaimed accruals)",
			user.Email, user.TotalSavings, expected, drift, len(unclaimed))
		if *dryRun {
			continue
		}

		if _, err := users.UpdateOne(ctx,
			bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"totalSavings": expected, "updatedAt": time.Now()}},
		); err != nil {
			log.Printf("Failed to rewrite counter for %s: %v", user.Email, err)
			continue
		}
		if len(unclaimed) > 0 {
			if _, err := transactions.UpdateMany(ctx,
				bson.M{"reference": bson.M{"$in": unclaimed}},
				bson.M{"$set": bson.M{"savingsAccrued": true, "updatedAt": time.Now()}},
			); err != nil {
				log.Printf("Failed to mark accruals for %s: %v", user.Email, err)
			}
		}
		reconciled++
	}
	if err := cursor.Err(); err != nil {
		log.Fatalf("User cursor error: %v", err)
	}

	log.Printf("Done: %d user(s) reconciled", reconciled)
}
