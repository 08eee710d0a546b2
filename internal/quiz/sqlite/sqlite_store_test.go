package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"section-quiz/internal/quiz"
)

var testDrivers = []string{DriverCGO, DriverPureGo}

func newTestSQLiteStore(t *testing.T, driver string) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(context.Background(), Options{Path: path, Driver: driver})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
		_ = os.Remove(path)
		_ = os.Remove(path + "-journal")
	})
	return store, path
}

func stringPtr(value string) *string {
	return &value
}

func sampleQuestions() []quiz.Question {
	return []quiz.Question{
		{Section: "math", Question: "2+2?", Choices: []string{"3", "4"}, Answer: "4"},
		{Section: "math", Question: "3*3?", Choices: []string{"9", "6", "12"}, Answer: "9"},
		{
			Section:  "reading_comprehension",
			Passage:  stringPtr("The cat sat on the mat."),
			Question: "Where did the cat sit?",
			Choices:  []string{"On the mat", "On the chair"},
			Answer:   "On the mat",
		},
	}
}

func TestSQLiteStoreReplaceAndReadQuestions(t *testing.T) {
	for _, driver := range testDrivers {
		t.Run(driver, func(t *testing.T) {
			store, _ := newTestSQLiteStore(t, driver)
			ctx := context.Background()

			inserted, err := store.ReplaceQuestions(ctx, sampleQuestions())
			if err != nil {
				t.Fatalf("ReplaceQuestions failed: %v", err)
			}
			if inserted != 3 {
				t.Fatalf("inserted = %d, want 3", inserted)
			}

			counts, err := store.SectionCounts(ctx)
			if err != nil {
				t.Fatalf("SectionCounts failed: %v", err)
			}
			want := []quiz.SectionCount{
				{Section: "math", Count: 2},
				{Section: "reading_comprehension", Count: 1},
			}
			if !reflect.DeepEqual(counts, want) {
				t.Fatalf("SectionCounts = %+v, want %+v", counts, want)
			}

			math, err := store.QuestionsBySection(ctx, "math")
			if err != nil {
				t.Fatalf("QuestionsBySection failed: %v", err)
			}
			if len(math) != 2 {
				t.Fatalf("expected 2 math questions, got %d", len(math))
			}
			if math[0].Question != "2+2?" || math[1].Question != "3*3?" {
				t.Fatalf("question order not preserved: %+v", math)
			}
			if math[0].ID >= math[1].ID {
				t.Fatalf("ids not increasing: %d, %d", math[0].ID, math[1].ID)
			}
			if math[0].Passage != nil {
				t.Fatalf("expected nil passage, got %q", *math[0].Passage)
			}
			if !reflect.DeepEqual(math[1].Choices, []string{"9", "6", "12"}) {
				t.Fatalf("choices = %v, want [9 6 12]", math[1].Choices)
			}

			reading, err := store.QuestionsBySection(ctx, "reading_comprehension")
			if err != nil {
				t.Fatalf("QuestionsBySection failed: %v", err)
			}
			if len(reading) != 1 || reading[0].Passage == nil || *reading[0].Passage != "The cat sat on the mat." {
				t.Fatalf("unexpected reading questions: %+v", reading)
			}
		})
	}
}

func TestSQLiteStoreSectionMatchIsExact(t *testing.T) {
	store, _ := newTestSQLiteStore(t, DriverCGO)
	ctx := context.Background()

	if _, err := store.ReplaceQuestions(ctx, sampleQuestions()); err != nil {
		t.Fatalf("ReplaceQuestions failed: %v", err)
	}

	for _, section := range []string{"Math", "mat", "math ", "unknown"} {
		questions, err := store.QuestionsBySection(ctx, section)
		if err != nil {
			t.Fatalf("QuestionsBySection(%q) failed: %v", section, err)
		}
		if questions == nil || len(questions) != 0 {
			t.Fatalf("QuestionsBySection(%q) = %+v, want empty slice", section, questions)
		}
	}
}

func TestSQLiteStoreReplaceDiscardsPreviousLoad(t *testing.T) {
	store, _ := newTestSQLiteStore(t, DriverCGO)
	ctx := context.Background()

	if _, err := store.ReplaceQuestions(ctx, sampleQuestions()); err != nil {
		t.Fatalf("ReplaceQuestions initial failed: %v", err)
	}
	if _, err := store.ReplaceQuestions(ctx, []quiz.Question{
		{Section: "history", Question: "Year of 1066 battle?", Choices: []string{"Hastings"}, Answer: "Hastings"},
	}); err != nil {
		t.Fatalf("ReplaceQuestions reload failed: %v", err)
	}

	counts, err := store.SectionCounts(ctx)
	if err != nil {
		t.Fatalf("SectionCounts failed: %v", err)
	}
	if len(counts) != 1 || counts[0].Section != "history" || counts[0].Count != 1 {
		t.Fatalf("unexpected counts after reload: %+v", counts)
	}

	history, err := store.QuestionsBySection(ctx, "history")
	if err != nil {
		t.Fatalf("QuestionsBySection failed: %v", err)
	}
	if len(history) != 1 || history[0].ID != 1 {
		t.Fatalf("expected fresh id sequence after reload, got %+v", history)
	}
}

func TestSQLiteStoreReplaceRollsBackOnFailure(t *testing.T) {
	store, _ := newTestSQLiteStore(t, DriverCGO)
	ctx := context.Background()

	if _, err := store.ReplaceQuestions(ctx, sampleQuestions()); err != nil {
		t.Fatalf("ReplaceQuestions initial failed: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := store.ReplaceQuestions(cancelled, sampleQuestions()[:1]); err == nil {
		t.Fatalf("expected error for cancelled context")
	}

	counts, err := store.SectionCounts(ctx)
	if err != nil {
		t.Fatalf("SectionCounts failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("previous load should survive a failed reload, got %+v", counts)
	}
}

func TestSQLiteStoreEmptyChoicesStoredAsList(t *testing.T) {
	store, _ := newTestSQLiteStore(t, DriverCGO)
	ctx := context.Background()

	if _, err := store.ReplaceQuestions(ctx, []quiz.Question{
		{Section: "open", Question: "Explain gravity.", Answer: "A force"},
	}); err != nil {
		t.Fatalf("ReplaceQuestions failed: %v", err)
	}

	questions, err := store.QuestionsBySection(ctx, "open")
	if err != nil {
		t.Fatalf("QuestionsBySection failed: %v", err)
	}
	if len(questions) != 1 || questions[0].Choices == nil || len(questions[0].Choices) != 0 {
		t.Fatalf("expected empty choices list, got %+v", questions)
	}
}

func TestSQLiteStoreMalformedChoicesFailsRead(t *testing.T) {
	store, _ := newTestSQLiteStore(t, DriverCGO)
	ctx := context.Background()

	if err := store.ResetSchema(ctx); err != nil {
		t.Fatalf("ResetSchema failed: %v", err)
	}
	if _, err := store.db.ExecContext(
		ctx,
		`INSERT INTO questions (section, passage, question, choices, answer) VALUES (?, NULL, ?, ?, ?)`,
		"math", "2+2?", "not json", "4",
	); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	if _, err := store.QuestionsBySection(ctx, "math"); err == nil {
		t.Fatalf("expected decode error for malformed choices")
	}
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	_, err := Open(context.Background(), Options{Path: path, ReadOnly: true})
	if err == nil {
		t.Fatalf("expected error opening missing database read-only")
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("read-only open must not create the file, stat err = %v", statErr)
	}
}

func TestNewOpenerReadsCommittedLoad(t *testing.T) {
	for _, driver := range testDrivers {
		t.Run(driver, func(t *testing.T) {
			store, path := newTestSQLiteStore(t, driver)
			ctx := context.Background()

			if _, err := store.ReplaceQuestions(ctx, sampleQuestions()); err != nil {
				t.Fatalf("ReplaceQuestions failed: %v", err)
			}

			open := NewOpener(Options{Path: path, Driver: driver})
			reader, err := open(ctx)
			if err != nil {
				t.Fatalf("open reader failed: %v", err)
			}
			defer reader.Close()

			counts, err := reader.SectionCounts(ctx)
			if err != nil {
				t.Fatalf("SectionCounts failed: %v", err)
			}
			if len(counts) != 2 {
				t.Fatalf("expected 2 sections, got %+v", counts)
			}
		})
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Options{Path: "x.db", Driver: "postgres"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestResolvePath(t *testing.T) {
	cases := map[string]string{
		"":             DefaultPath,
		"   ":          DefaultPath,
		" data/q.db ":  "data/q.db",
		"/tmp/quiz.db": "/tmp/quiz.db",
	}
	for input, want := range cases {
		if got := ResolvePath(input); got != want {
			t.Fatalf("ResolvePath(%q) = %q, want %q", input, got, want)
		}
	}
}
