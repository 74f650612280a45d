// Package catalogue maintains the set of declared shared files, their
// status lifecycle, and the duplicate detection indices.
package catalogue

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nexusbt/nexus/foundation/nexus/credit"
	"github.com/nexusbt/nexus/foundation/nexus/genesis"
	"github.com/shopspring/decimal"
)

// maxDownloadsPerUser caps how many times a non-owner can download the
// same file.
const maxDownloadsPerUser = 2

// Set of error variables for catalogue operations.
var (
	ErrNotFound         = errors.New("file not found")
	ErrNotActive        = errors.New("file is not active")
	ErrDuplicateName    = errors.New("an active file with this name already exists")
	ErrDuplicateContent = errors.New("an active file with this content already exists")
	ErrDownloadLimit    = errors.New("download limit exceeded for this file")
	ErrForbidden        = errors.New("only the owner or an administrator may do this")
	ErrInvalidFile      = errors.New("invalid file metadata")
)

// =============================================================================

// Status represents the lifecycle state of a shared file. The member list
// is closed.
type Status string

// Set of file statuses. A file is created Pending and becomes Active only
// when its declaring transaction is mined.
const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusReviewed Status = "reviewed"
	StatusRemoved  Status = "removed"
)

// ParseStatus converts a string into a Status.
func ParseStatus(value string) (Status, error) {
	status := Status(value)
	switch status {
	case StatusPending, StatusActive, StatusReviewed, StatusRemoved:
		return status, nil
	}

	return "", fmt.Errorf("unknown status %q", value)
}

// =============================================================================

// Category represents the fixed catalogue of file categories.
type Category string

// Set of known categories.
const (
	CategoryVideo     Category = "video"
	CategoryAudio     Category = "audio"
	CategorySoftware  Category = "software"
	CategoryGames     Category = "games"
	CategoryDocuments Category = "documents"
	CategoryOther     Category = "other"
)

// ParseCategory converts a string into a Category. The empty string parses
// to CategoryOther.
func ParseCategory(value string) (Category, error) {
	if value == "" {
		return CategoryOther, nil
	}

	category := Category(value)
	switch category {
	case CategoryVideo, CategoryAudio, CategorySoftware, CategoryGames, CategoryDocuments, CategoryOther:
		return category, nil
	}

	return "", fmt.Errorf("unknown category %q", value)
}

// =============================================================================

// File represents a declared shared file. Files are owned by the catalogue
// and referenced by id; callers always receive copies.
type File struct {
	ID            uint64          `json:"id"`
	Name          string          `json:"name"`
	BaseName      string          `json:"base_name"`
	SizeGB        decimal.Decimal `json:"size_gb"`
	Uploader      string          `json:"uploader"`
	OwnerIdentity string          `json:"owner_identity"`
	Description   string          `json:"description"`
	Category      Category        `json:"category"`
	FileHash      string          `json:"file_hash"`
	Seeds         int             `json:"seeds"`
	Peers         int             `json:"peers"`
	Status        Status          `json:"status"`
	UploadTime    time.Time       `json:"upload_time"`
	Downloads     map[string]int  `json:"downloads"`
}

// NewFile contains the metadata required to declare a new shared file.
type NewFile struct {
	Name          string
	SizeGB        decimal.Decimal
	Uploader      string
	OwnerIdentity string
	Description   string
	Category      Category
	FileHash      string
}

// Conflict identifies the active file that blocks a declaration.
type Conflict struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// QueryFilter represents the conjunctive search filters. Nil or zero
// fields impose no constraint.
type QueryFilter struct {
	Keyword   string
	Category  Category
	MinSizeGB *decimal.Decimal
	MaxSizeGB *decimal.Decimal
	MinSeeds  *int
}

// =============================================================================

// Catalogue manages the set of shared files and the indices used for
// duplicate detection over active files.
type Catalogue struct {
	genesis genesis.Genesis
	mu      sync.RWMutex

	files       map[uint64]File
	nextID      uint64
	activeNames map[string]uint64 // lowercased base name -> file id
	activeHash  map[string]uint64 // content digest -> file id
}

// New constructs a catalogue for managing shared files.
func New(genesis genesis.Genesis) *Catalogue {
	return &Catalogue{
		genesis:     genesis,
		files:       make(map[uint64]File),
		nextID:      1,
		activeNames: make(map[string]uint64),
		activeHash:  make(map[string]uint64),
	}
}

// Declare validates the metadata, checks the duplicate rules against the
// active files, and inserts a new pending file. It returns the inserted
// file; no credits move until the declaring transaction is mined.
func (cat *Catalogue) Declare(nf NewFile) (File, error) {
	if strings.TrimSpace(nf.Name) == "" {
		return File{}, fmt.Errorf("name is required: %w", ErrInvalidFile)
	}
	if nf.FileHash == "" {
		return File{}, fmt.Errorf("file hash is required: %w", ErrInvalidFile)
	}
	if nf.SizeGB.LessThan(cat.genesis.MinSizeGB) || nf.SizeGB.GreaterThan(cat.genesis.MaxSizeGB) {
		return File{}, fmt.Errorf("size %s GB is outside the range [%s, %s]: %w",
			nf.SizeGB, cat.genesis.MinSizeGB, cat.genesis.MaxSizeGB, ErrInvalidFile)
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	if conflict := cat.nameConflict(nf.Uploader, nf.Name); conflict != nil {
		return File{}, fmt.Errorf("%q is held by %q: %w", conflict.Name, conflict.Owner, ErrDuplicateName)
	}

	if id, exists := cat.activeHash[nf.FileHash]; exists {
		return File{}, fmt.Errorf("content matches file %d: %w", id, ErrDuplicateContent)
	}

	file := File{
		ID:            cat.nextID,
		Name:          nf.Name,
		BaseName:      baseName(nf.Name),
		SizeGB:        nf.SizeGB,
		Uploader:      nf.Uploader,
		OwnerIdentity: nf.OwnerIdentity,
		Description:   nf.Description,
		Category:      nf.Category,
		FileHash:      nf.FileHash,
		Status:        StatusPending,
		UploadTime:    time.Now().UTC(),
		Downloads:     make(map[string]int),
	}
	cat.files[file.ID] = file
	cat.nextID++

	return copyFile(file), nil
}

// CheckName is a pure pre-check for the duplicate name rule. It reports
// whether the name is available for the user and, when it is not, the
// conflicting active file.
func (cat *Catalogue) CheckName(username string, name string) (bool, *Conflict) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	if conflict := cat.nameConflict(username, name); conflict != nil {
		return false, conflict
	}

	return true, nil
}

// Activate transitions a pending file to active. It is invoked by the
// mining engine when the matching declare transaction settles.
func (cat *Catalogue) Activate(fileID uint64) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	file, exists := cat.files[fileID]
	if !exists {
		return ErrNotFound
	}
	if file.Status != StatusPending {
		return fmt.Errorf("file %d is %s: %w", fileID, file.Status, ErrNotActive)
	}

	file.Status = StatusActive
	file.Seeds++
	cat.files[fileID] = file

	cat.activeNames[strings.ToLower(file.BaseName)] = fileID
	cat.activeHash[file.FileHash] = fileID

	return nil
}

// RecordDownload validates a download attempt and returns the cost and
// miner fee to enqueue. Owners re-download their own files for free with
// no limit. A pending file can be downloaded since the transaction that
// activates it is already queued ahead of the download.
func (cat *Catalogue) RecordDownload(fileID uint64, downloader string) (cost uint64, fee uint64, err error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	file, exists := cat.files[fileID]
	if !exists {
		return 0, 0, ErrNotFound
	}

	if file.Status != StatusActive && file.Status != StatusPending {
		return 0, 0, fmt.Errorf("file %d is %s: %w", fileID, file.Status, ErrNotActive)
	}

	if downloader == file.Uploader {
		return 0, 0, nil
	}

	if file.Downloads[downloader] >= maxDownloadsPerUser {
		return 0, 0, ErrDownloadLimit
	}

	cost, fee, err = credit.DownloadCost(file.SizeGB, cat.genesis.CreditPerGB, cat.genesis.TipRate)
	if err != nil {
		return 0, 0, err
	}

	file.Downloads[downloader]++
	file.Peers++
	cat.files[fileID] = file

	return cost, fee, nil
}

// Search returns the active files matching every provided filter, ordered
// by id. The keyword matches case-insensitively against the base name.
func (cat *Catalogue) Search(filter QueryFilter) []File {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	keyword := strings.ToLower(filter.Keyword)

	var out []File
	for _, file := range cat.files {
		if file.Status != StatusActive {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(file.BaseName), keyword) {
			continue
		}
		if filter.Category != "" && file.Category != filter.Category {
			continue
		}
		if filter.MinSizeGB != nil && file.SizeGB.LessThan(*filter.MinSizeGB) {
			continue
		}
		if filter.MaxSizeGB != nil && file.SizeGB.GreaterThan(*filter.MaxSizeGB) {
			continue
		}
		if filter.MinSeeds != nil && file.Seeds < *filter.MinSeeds {
			continue
		}

		out = append(out, copyFile(file))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// ListByOwner returns every file declared by the specified user, in any
// status, ordered by id.
func (cat *Catalogue) ListByOwner(username string) []File {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	var out []File
	for _, file := range cat.files {
		if file.Uploader == username {
			out = append(out, copyFile(file))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// QueryByID returns the file with the specified id.
func (cat *Catalogue) QueryByID(fileID uint64) (File, error) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	file, exists := cat.files[fileID]
	if !exists {
		return File{}, ErrNotFound
	}

	return copyFile(file), nil
}

// Report flags an active file for moderation, moving it to the reviewed
// status. A reviewed file no longer participates in the duplicate indices
// or search results.
func (cat *Catalogue) Report(fileID uint64) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	file, exists := cat.files[fileID]
	if !exists {
		return ErrNotFound
	}
	if file.Status != StatusActive {
		return fmt.Errorf("file %d is %s: %w", fileID, file.Status, ErrNotActive)
	}

	cat.deactivate(file)

	file.Status = StatusReviewed
	cat.files[fileID] = file

	return nil
}

// Remove takes a file out of the catalogue. Only the owner or an
// administrator may remove a file.
func (cat *Catalogue) Remove(fileID uint64, requester string, admin bool) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	file, exists := cat.files[fileID]
	if !exists {
		return ErrNotFound
	}

	if requester != file.Uploader && !admin {
		return ErrForbidden
	}

	cat.deactivate(file)

	file.Status = StatusRemoved
	cat.files[fileID] = file

	return nil
}

// Copy makes a copy of every file in the catalogue, ordered by id.
func (cat *Catalogue) Copy() []File {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	out := make([]File, 0, len(cat.files))
	for _, file := range cat.files {
		out = append(out, copyFile(file))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Replace swaps the current set of files with the specified set and
// rebuilds the duplicate indices. It is used when restoring from a
// snapshot.
func (cat *Catalogue) Replace(files []File) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	cat.files = make(map[uint64]File, len(files))
	cat.activeNames = make(map[string]uint64)
	cat.activeHash = make(map[string]uint64)
	cat.nextID = 1

	for _, file := range files {
		cat.files[file.ID] = copyFile(file)
		if file.ID >= cat.nextID {
			cat.nextID = file.ID + 1
		}
		if file.Status == StatusActive {
			cat.activeNames[strings.ToLower(file.BaseName)] = file.ID
			cat.activeHash[file.FileHash] = file.ID
		}
	}
}

// =============================================================================

// nameConflict reports the active file that holds the same base name for a
// different owner. Callers must hold the lock.
func (cat *Catalogue) nameConflict(username string, name string) *Conflict {
	id, exists := cat.activeNames[strings.ToLower(baseName(name))]
	if !exists {
		return nil
	}

	file := cat.files[id]
	if file.Uploader == username {
		return nil
	}

	return &Conflict{Name: file.Name, Owner: file.Uploader}
}

// deactivate removes a file from the duplicate indices. Callers must hold
// the lock.
func (cat *Catalogue) deactivate(file File) {
	key := strings.ToLower(file.BaseName)
	if id, exists := cat.activeNames[key]; exists && id == file.ID {
		delete(cat.activeNames, key)
	}
	if id, exists := cat.activeHash[file.FileHash]; exists && id == file.ID {
		delete(cat.activeHash, file.FileHash)
	}
}

// baseName strips the extension from a file name for duplicate matching.
func baseName(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}

// copyFile clones a file, including its download counters.
func copyFile(file File) File {
	downloads := make(map[string]int, len(file.Downloads))
	for username, count := range file.Downloads {
		downloads[username] = count
	}
	file.Downloads = downloads
	return file
}
