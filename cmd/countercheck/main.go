// Command countercheck reports posts whose denormalized counters disagree
// with the live child rows. It never writes; exit status 1 means drift.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const driftQuery = `
SELECT post_id, likes_count, live_likes, comments_count, live_comments, shares_count, live_shares
FROM post_counter_drift
WHERE likes_count <> live_likes
   OR comments_count <> live_comments
   OR shares_count <> live_shares
ORDER BY post_id
LIMIT $1`

type driftRow struct {
	PostID        int64
	LikesCount    int64
	LiveLikes     int64
	CommentsCount int64
	LiveComments  int64
	SharesCount   int64
	LiveShares    int64
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func main() {
	limit := flag.Int("limit", 100, "Maximum drifted posts to report")
	timeout := flag.Duration("timeout", 30*time.Second, "Query timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DBDriver == database.DriverSQLite {
		log.Fatal("countercheck requires postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, database.PostgresDSN(cfg))
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	rows, err := queryDrift(ctx, pool, *limit)
	if err != nil {
		log.Fatalf("query drift: %v", err)
	}

	if len(rows) == 0 {
		log.Println("no counter drift")
		return
	}

	printDrift(os.Stdout, rows)
	pool.Close()
	os.Exit(1)
}

func queryDrift(ctx context.Context, q querier, limit int) ([]driftRow, error) {
	rows, err := q.Query(ctx, driftQuery, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (driftRow, error) {
		var d driftRow
		err := row.Scan(&d.PostID, &d.LikesCount, &d.LiveLikes, &d.CommentsCount, &d.LiveComments, &d.SharesCount, &d.LiveShares)
		return d, err
	})
}

func printDrift(w io.Writer, rows []driftRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POST\tLIKES\tCOMMENTS\tSHARES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.PostID,
			cell(r.LikesCount, r.LiveLikes),
			cell(r.CommentsCount, r.LiveComments),
			cell(r.SharesCount, r.LiveShares),
		)
	}
	_ = tw.Flush()
}

// cell renders stored/live, or just the value when they agree.
func cell(stored, live int64) string {
	if stored == live {
		return fmt.Sprintf("%d", stored)
	}
	return fmt.Sprintf("%d/%d", stored, live)
}
