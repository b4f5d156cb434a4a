package unitdb_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/vinicius-lino-figueiredo/unitdb"
)

var sizes = [...]int{1, 10, 100, 1_000, 10_000, 100_000}

func seeded(b *testing.B, size int) unitdb.UnitDB {
	b.Helper()
	r := rand.New(rand.NewSource(int64(size)))
	docs := make([]any, size)
	for n := range size {
		docs[n] = M{"part": n + 1, "rnd": r.Intn(size), "name": fmt.Sprintf("doc %d", n)}
	}
	db := unitdb.NewDB()
	if _, err := db.InsertMany(context.Background(), docs...); err != nil {
		b.Fatal(err)
	}
	return db
}

func BenchmarkCreate(b *testing.B) {
	for b.Loop() {
		unitdb.NewDB()
	}
}

func BenchmarkInsert(b *testing.B) {
	ctx := context.Background()
	db := unitdb.NewDB()

	for b.Loop() {
		if _, err := db.Insert(ctx, M{"jo": "jo"}); err != nil {
			b.FailNow()
		}
	}
}

func BenchmarkInsertBatch(b *testing.B) {
	ctx := context.Background()

	for _, size := range sizes {
		b.Run(fmt.Sprintf("db=%d", size), func(b *testing.B) {
			db := unitdb.NewDB()
			for b.Loop() {
				m := make([]any, size)
				for n := range size {
					m[n] = M{"part": n + 1}
				}
				if _, err := db.InsertMany(ctx, m...); err != nil {
					b.FailNow()
				}
				if _, err := db.Clear(ctx); err != nil {
					b.FailNow()
				}
			}

			perItem := float64(b.Elapsed().Nanoseconds()) / float64(b.N*size)

			b.ReportMetric(perItem, "ns/item")
		})
	}
}

func BenchmarkFind(b *testing.B) {
	ctx := context.Background()

	for _, size := range sizes {
		b.Run(fmt.Sprintf("db=%d", size), func(b *testing.B) {
			db := seeded(b, size)
			query := M{"part": M{"$gt": size / 2}, "name": M{"$regex": "^doc"}}
			for b.Loop() {
				if _, err := db.FindDocs(ctx, query); err != nil {
					b.FailNow()
				}
			}
		})
	}
}

func BenchmarkFindSorted(b *testing.B) {
	ctx := context.Background()
	sort := unitdb.Sort{{Key: "rnd", Order: 1}, {Key: "part", Order: -1}}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("db=%d", size), func(b *testing.B) {
			db := seeded(b, size)
			for b.Loop() {
				if _, err := db.FindDocs(ctx, nil, unitdb.WithSort(sort), unitdb.WithLimit(10)); err != nil {
					b.FailNow()
				}
			}
		})
	}
}

func BenchmarkCount(b *testing.B) {
	ctx := context.Background()

	for _, size := range sizes {
		b.Run(fmt.Sprintf("db=%d", size), func(b *testing.B) {
			db := seeded(b, size)
			query := M{"$or": A{M{"rnd": 0}, M{"part": M{"$in": A{1, 2, 3}}}}}
			for b.Loop() {
				if _, err := db.Count(ctx, query); err != nil {
					b.FailNow()
				}
			}
		})
	}
}

func BenchmarkUpdate(b *testing.B) {
	ctx := context.Background()

	for _, size := range sizes {
		b.Run(fmt.Sprintf("db=%d", size), func(b *testing.B) {
			db := seeded(b, size)
			n := 0
			for b.Loop() {
				n++
				if _, err := db.Update(ctx, M{"part": M{"$lte": size / 10}}, M{"seen": n}); err != nil {
					b.FailNow()
				}
			}
		})
	}
}
