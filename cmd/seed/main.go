package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"bookshelf/internal/book"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	publishers = []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Gramedia", "Mizan", "Wiley"}
	authors    = []string{"Pramoedya Ananta Toer", "Ursula K. Le Guin", "Tere Liye", "Italo Calvino", "Dee Lestari", "Ted Chiang"}
	words      = []string{"River", "Garden", "Empire", "Silence", "Harbor", "Lantern", "Monsoon", "Archive", "Island", "Orbit"}
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "Base URL of the running API")
	count := flag.Int("n", 20, "Number of books to create")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	created, err := seed(ctx, client, *addr, *count, rng)
	log.Printf("Seeded %d/%d books into %s", created, *count, *addr)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

// seed posts count generated books and stops at the first failure.
func seed(ctx context.Context, client *http.Client, baseURL string, count int, rng *rand.Rand) (int, error) {
	endpoint := strings.TrimRight(baseURL, "/") + "/books"

	for i := 0; i < count; i++ {
		body, err := json.Marshal(randomPayload(i, rng))
		if err != nil {
			return i, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return i, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return i, fmt.Errorf("post book %d: %w", i+1, err)
		}
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			return i, fmt.Errorf("post book %d: status %d: %s", i+1, resp.StatusCode, bytes.TrimSpace(respBody))
		}
	}
	return count, nil
}

func randomPayload(i int, rng *rand.Rand) book.Payload {
	pages := 100 + rng.Intn(800)
	read := rng.Intn(pages + 1)
	// A quarter of the books are finished.
	if rng.Intn(4) == 0 {
		read = pages
	}

	title := fmt.Sprintf("The %s of the %s", pick(words, rng), pick(words, rng))
	return book.Payload{
		Name:      fmt.Sprintf("%s %d", title, i+1),
		Year:      1950 + rng.Intn(75),
		Author:    pick(authors, rng),
		Summary:   fmt.Sprintf("A story about the %s.", strings.ToLower(pick(words, rng))),
		Publisher: pick(publishers, rng),
		PageCount: pages,
		ReadPage:  read,
		Reading:   read > 0 && read < pages,
	}
}

func pick(list []string, rng *rand.Rand) string {
	return list[rng.Intn(len(list))]
}
