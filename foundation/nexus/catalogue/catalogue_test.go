package catalogue_test

import (
	"errors"
	"testing"

	"github.com/nexusbt/nexus/foundation/nexus/catalogue"
	"github.com/nexusbt/nexus/foundation/nexus/genesis"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newFile(name string, uploader string, hash string, sizeGB string) catalogue.NewFile {
	return catalogue.NewFile{
		Name:     name,
		SizeGB:   decimal.RequireFromString(sizeGB),
		Uploader: uploader,
		Category: catalogue.CategoryOther,
		FileHash: hash,
	}
}

// declareActive declares a file and immediately activates it, standing in
// for the declare transaction being mined.
func declareActive(t *testing.T, cat *catalogue.Catalogue, nf catalogue.NewFile) catalogue.File {
	t.Helper()

	file, err := cat.Declare(nf)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to declare %q: %v", failed, nf.Name, err)
	}
	if err := cat.Activate(file.ID); err != nil {
		t.Fatalf("\t%s\tShould be able to activate %q: %v", failed, nf.Name, err)
	}

	file, err = cat.QueryByID(file.ID)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to query %q: %v", failed, nf.Name, err)
	}
	return file
}

func TestDuplicateRules(t *testing.T) {
	t.Log("Given the need to enforce the duplicate detection rules.")
	{
		cat := catalogue.New(genesis.Default())

		file := declareActive(t, cat, newFile("ubuntu-22.04.iso", "alice", "hash-1", "2"))
		t.Logf("\t%s\tShould be able to declare and activate a file.", success)

		if file.Seeds != 1 {
			t.Fatalf("\t%s\tShould seed the owner on activation: got %d", failed, file.Seeds)
		}
		t.Logf("\t%s\tShould seed the owner on activation.", success)

		// Same base name (extension stripped, case-insensitive) from a
		// different owner is blocked.
		if _, err := cat.Declare(newFile("UBUNTU-22.04.mkv", "bob", "hash-2", "2")); !errors.Is(err, catalogue.ErrDuplicateName) {
			t.Fatalf("\t%s\tShould reject a duplicate name from another owner: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a duplicate name from another owner.", success)

		// The owner may re-declare the same name.
		if _, err := cat.Declare(newFile("ubuntu-22.04.iso", "alice", "hash-3", "2")); err != nil {
			t.Fatalf("\t%s\tShould allow the owner to re-declare the name: %v", failed, err)
		}
		t.Logf("\t%s\tShould allow the owner to re-declare the name.", success)

		// Identical content is blocked for everyone, including the owner.
		if _, err := cat.Declare(newFile("something-else.iso", "alice", "hash-1", "2")); !errors.Is(err, catalogue.ErrDuplicateContent) {
			t.Fatalf("\t%s\tShould reject duplicate content from the owner: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject duplicate content from the owner.", success)

		if _, err := cat.Declare(newFile("other-name.iso", "bob", "hash-1", "2")); !errors.Is(err, catalogue.ErrDuplicateContent) {
			t.Fatalf("\t%s\tShould reject duplicate content from another owner: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject duplicate content from another owner.", success)

		available, conflict := cat.CheckName("bob", "ubuntu-22.04.zip")
		if available || conflict == nil {
			t.Fatalf("\t%s\tShould report the name conflict on a pre-check.", failed)
		}
		if conflict.Owner != "alice" {
			t.Fatalf("\t%s\tShould name the conflicting owner: got %q", failed, conflict.Owner)
		}
		t.Logf("\t%s\tShould report the name conflict on a pre-check.", success)

		// Reporting the file takes it out of the indices and frees the name.
		if err := cat.Report(file.ID); err != nil {
			t.Fatalf("\t%s\tShould be able to report the file: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to report the file.", success)

		if available, _ := cat.CheckName("bob", "ubuntu-22.04.zip"); !available {
			t.Fatalf("\t%s\tShould free the name once the file is reviewed.", failed)
		}
		t.Logf("\t%s\tShould free the name once the file is reviewed.", success)
	}
}

func TestDownloadLimit(t *testing.T) {
	t.Log("Given the need to cap repeat downloads per user.")
	{
		cat := catalogue.New(genesis.Default())
		file := declareActive(t, cat, newFile("dataset.tar", "alice", "hash-1", "2"))

		for i := 0; i < 2; i++ {
			cost, fee, err := cat.RecordDownload(file.ID, "bob")
			if err != nil {
				t.Fatalf("\t%s\tShould allow download %d: %v", failed, i+1, err)
			}
			if cost != 2000 || fee != 2 {
				t.Fatalf("\t%s\tShould price download %d correctly: got cost %d fee %d", failed, i+1, cost, fee)
			}
		}
		t.Logf("\t%s\tShould allow two downloads of the same file.", success)

		if _, _, err := cat.RecordDownload(file.ID, "bob"); !errors.Is(err, catalogue.ErrDownloadLimit) {
			t.Fatalf("\t%s\tShould reject the third download: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject the third download.", success)

		// The owner is exempt from the limit and never charged.
		for i := 0; i < 5; i++ {
			cost, fee, err := cat.RecordDownload(file.ID, "alice")
			if err != nil || cost != 0 || fee != 0 {
				t.Fatalf("\t%s\tShould let the owner download for free: cost %d fee %d err %v", failed, cost, fee, err)
			}
		}
		t.Logf("\t%s\tShould let the owner download for free.", success)

		got, _ := cat.QueryByID(file.ID)
		if got.Peers != 2 {
			t.Fatalf("\t%s\tShould count peers only for charged downloads: got %d", failed, got.Peers)
		}
		t.Logf("\t%s\tShould count peers only for charged downloads.", success)
	}
}

func TestSearch(t *testing.T) {
	t.Log("Given the need to search the active catalogue conjunctively.")
	{
		cat := catalogue.New(genesis.Default())

		nf := newFile("holiday-video.mp4", "alice", "hash-1", "4")
		nf.Category = catalogue.CategoryVideo
		declareActive(t, cat, nf)

		nf = newFile("holiday-music.mp3", "alice", "hash-2", "0.5")
		nf.Category = catalogue.CategoryAudio
		declareActive(t, cat, nf)

		nf = newFile("compiler.zip", "bob", "hash-3", "1")
		nf.Category = catalogue.CategorySoftware
		declareActive(t, cat, nf)

		// A pending file never shows up in search.
		if _, err := cat.Declare(newFile("holiday-extras.mp4", "bob", "hash-4", "1")); err != nil {
			t.Fatalf("\t%s\tShould be able to declare a pending file: %v", failed, err)
		}

		out := cat.Search(catalogue.QueryFilter{Keyword: "holiday"})
		if len(out) != 2 {
			t.Fatalf("\t%s\tShould match the keyword against active files only: got %d, exp 2", failed, len(out))
		}
		t.Logf("\t%s\tShould match the keyword against active files only.", success)

		minSize := decimal.RequireFromString("1")
		out = cat.Search(catalogue.QueryFilter{Keyword: "holiday", MinSizeGB: &minSize})
		if len(out) != 1 || out[0].Name != "holiday-video.mp4" {
			t.Fatalf("\t%s\tShould apply every filter conjunctively: got %d", failed, len(out))
		}
		t.Logf("\t%s\tShould apply every filter conjunctively.", success)

		out = cat.Search(catalogue.QueryFilter{Category: catalogue.CategorySoftware})
		if len(out) != 1 || out[0].Uploader != "bob" {
			t.Fatalf("\t%s\tShould filter by category: got %d", failed, len(out))
		}
		t.Logf("\t%s\tShould filter by category.", success)

		out = cat.Search(catalogue.QueryFilter{})
		if len(out) != 3 {
			t.Fatalf("\t%s\tShould return every active file with no filters: got %d", failed, len(out))
		}
		for i := 1; i < len(out); i++ {
			if out[i-1].ID >= out[i].ID {
				t.Fatalf("\t%s\tShould order results by id.", failed)
			}
		}
		t.Logf("\t%s\tShould return every active file ordered by id.", success)
	}
}

func TestRemove(t *testing.T) {
	t.Log("Given the need to restrict removal to the owner or an administrator.")
	{
		cat := catalogue.New(genesis.Default())
		file := declareActive(t, cat, newFile("movie.avi", "alice", "hash-1", "2"))

		if err := cat.Remove(file.ID, "bob", false); !errors.Is(err, catalogue.ErrForbidden) {
			t.Fatalf("\t%s\tShould reject removal by a non-owner member: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject removal by a non-owner member.", success)

		if err := cat.Remove(file.ID, "admin", true); err != nil {
			t.Fatalf("\t%s\tShould allow removal by an administrator: %v", failed, err)
		}
		t.Logf("\t%s\tShould allow removal by an administrator.", success)

		got, _ := cat.QueryByID(file.ID)
		if got.Status != catalogue.StatusRemoved {
			t.Fatalf("\t%s\tShould mark the file removed: got %s", failed, got.Status)
		}
		t.Logf("\t%s\tShould mark the file removed.", success)

		if _, _, err := cat.RecordDownload(file.ID, "bob"); !errors.Is(err, catalogue.ErrNotActive) {
			t.Fatalf("\t%s\tShould reject downloads of a removed file: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject downloads of a removed file.", success)
	}
}

func TestDeclareValidation(t *testing.T) {
	t.Log("Given the need to validate declaration metadata.")
	{
		cat := catalogue.New(genesis.Default())

		if _, err := cat.Declare(newFile("  ", "alice", "hash-1", "2")); !errors.Is(err, catalogue.ErrInvalidFile) {
			t.Fatalf("\t%s\tShould reject a blank name: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a blank name.", success)

		if _, err := cat.Declare(newFile("file.iso", "alice", "", "2")); !errors.Is(err, catalogue.ErrInvalidFile) {
			t.Fatalf("\t%s\tShould reject a missing content hash: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a missing content hash.", success)

		if _, err := cat.Declare(newFile("file.iso", "alice", "hash-1", "2000")); !errors.Is(err, catalogue.ErrInvalidFile) {
			t.Fatalf("\t%s\tShould reject a size above the genesis bound: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a size above the genesis bound.", success)
	}
}
