// Package backup implements the backup/restore and data-portability
// subsystem: the binary snapshot writer and reader, the legacy JSON
// codec with id remapping, and the format dispatcher.
//
// The Service type is the entry point consumed by the presentation
// layer. Per the subsystem's propagation policy, nothing escapes a
// public entry point as an error: outcomes are booleans, detail lives in
// the diagnostic log, and progress is observable through a tri-state
// status.
package backup

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rentledger/rentledger/internal/blob"
	"github.com/rentledger/rentledger/internal/settings"
	"github.com/rentledger/rentledger/internal/store"
	"github.com/rentledger/rentledger/pkg/types"
)

// Phase is the coarse state of an export or import operation.
type Phase int

const (
	// PhaseIdle means no operation of this kind has run yet.
	PhaseIdle Phase = iota
	// PhaseRunning means an operation is in flight.
	PhaseRunning
	// PhaseDone means the last operation finished; see OK and Message.
	PhaseDone
)

// Status is the observable tri-state outcome of the last operation.
type Status struct {
	Phase   Phase
	OK      bool
	Message string
}

// Service exposes the export and import operations. Operations of the
// same kind are single-flight: a second call while one is running fails
// fast instead of overlapping.
type Service struct {
	writer *Writer
	reader *Reader
	codec  *Codec
	log    zerolog.Logger

	mu           sync.Mutex
	exportStatus Status
	importStatus Status
}

// NewService wires the writer, reader, and codec onto the given stores.
func NewService(st *store.Store, se *settings.Store, bl *blob.Store, appVersion string, log zerolog.Logger) *Service {
	return &Service{
		writer: NewWriter(st, se, bl, appVersion, log),
		reader: NewReader(st, se, bl, log),
		codec:  NewCodec(st, se, log),
		log:    log,
	}
}

// Export builds a snapshot archive. It returns the archive path and true
// on success, or "" and false on any failure (detail is logged).
func (s *Service) Export() (string, bool) {
	if !s.begin(&s.exportStatus) {
		s.log.Warn().Msg("export already running")
		return "", false
	}

	path, err := s.writer.Export()
	if err != nil {
		s.log.Error().Err(err).Msg("export failed")
		s.finish(&s.exportStatus, false, err.Error())
		return "", false
	}
	s.finish(&s.exportStatus, true, path)
	return path, true
}

// Import restores from an inbound file, routing it to the snapshot
// reader or the legacy codec by format detection. When clearExisting is
// set the entity tables are emptied before new data is applied. Returns
// false on any failure (detail is logged).
func (s *Service) Import(src Source, clearExisting bool) bool {
	if !s.begin(&s.importStatus) {
		s.log.Warn().Msg("import already running")
		return false
	}

	ok := s.runImport(src, clearExisting)
	if ok {
		s.finish(&s.importStatus, true, "import complete")
	} else {
		s.finish(&s.importStatus, false, "import failed")
	}
	return ok
}

// runImport performs the actual import; all failures are converted to
// false here so nothing propagates past the subsystem boundary.
func (s *Service) runImport(src Source, clearExisting bool) bool {
	if src.Path == "" {
		s.log.Error().Err(types.ErrInvalidSource).Msg("import source is empty")
		return false
	}
	f, err := os.Open(src.Path)
	if err != nil {
		s.log.Error().Err(fmt.Errorf("%w: %v", types.ErrInvalidSource, err)).Str("path", src.Path).Msg("opening import source")
		return false
	}
	defer f.Close()

	format := DetectFormat(src)
	s.log.Info().Str("path", src.Path).Str("format", format.String()).Msg("import starting")

	switch format {
	case FormatSnapshot:
		if err := s.reader.Restore(f, clearExisting); err != nil {
			s.log.Error().Err(err).Msg("snapshot restore failed")
			return false
		}
	case FormatLegacyJSON:
		report, err := s.codec.Decode(f, clearExisting)
		if err != nil {
			s.log.Error().Err(err).Msg("legacy import failed")
			return false
		}
		for table, n := range report.Imported {
			s.log.Info().Str("table", table).Int("rows", n).Msg("imported")
		}
		if len(report.Failures) > 0 {
			s.log.Warn().Int("skipped", len(report.Failures)).Msg("import finished with skipped rows")
		}
	}
	return true
}

// ExportStatus returns the current export status.
func (s *Service) ExportStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportStatus
}

// ImportStatus returns the current import status.
func (s *Service) ImportStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.importStatus
}

// begin transitions a status to running unless it already is.
func (s *Service) begin(status *Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status.Phase == PhaseRunning {
		return false
	}
	*status = Status{Phase: PhaseRunning}
	return true
}

// finish records the outcome of a completed operation.
func (s *Service) finish(status *Status, ok bool, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*status = Status{Phase: PhaseDone, OK: ok, Message: message}
}
