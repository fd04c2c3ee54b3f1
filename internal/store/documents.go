// Document table operations. Documents reference entities polymorphically
// through (entity_type, entity_id) with no foreign key; a document row may
// outlive its referent. The blob file behind a document is removed only by
// the explicit document-delete path, never by entity cascades.
package store

import (
	"database/sql"
	"fmt"

	"github.com/rentledger/rentledger/pkg/types"
)

const documentColumns = "document_id, document_name, document_type, file_path, entity_type, " +
	"entity_id, upload_date, file_size, mime_type, notes"

// InsertDocument inserts a new document row and returns its assigned id.
func (s *Store) InsertDocument(d *types.Document) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(
		`INSERT INTO documents (document_name, document_type, file_path, entity_type, entity_id,
		    upload_date, file_size, mime_type, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.DocumentName, dbString(d.DocumentType), d.FilePath, string(d.EntityType), d.EntityID,
		dbTime(d.UploadDate), d.FileSize, dbString(d.MimeType), dbString(d.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading document id: %w", err)
	}
	d.ID = id
	return id, nil
}

// UpdateDocument replaces all fields of an existing document row.
func (s *Store) UpdateDocument(d *types.Document) error {
	if d.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := d.Validate(); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec(
		`UPDATE documents SET document_name = ?, document_type = ?, file_path = ?, entity_type = ?,
		    entity_id = ?, upload_date = ?, file_size = ?, mime_type = ?, notes = ?
		 WHERE document_id = ?`,
		d.DocumentName, dbString(d.DocumentType), d.FilePath, string(d.EntityType), d.EntityID,
		dbTime(d.UploadDate), d.FileSize, dbString(d.MimeType), dbString(d.Notes), d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating document %d: %w", d.ID, err)
	}
	return requireRow(res)
}

// DeleteDocument removes a document row. The caller owning the
// document-management path is responsible for deleting the blob file.
func (s *Store) DeleteDocument(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM documents WHERE document_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document %d: %w", id, err)
	}
	return requireRow(res)
}

// GetDocument returns the document with the given id.
func (s *Store) GetDocument(id int64) (*types.Document, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+documentColumns+" FROM documents WHERE document_id = ?", id)
	d, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting document %d: %w", id, err)
	}
	return d, nil
}

// ListDocuments returns all documents ordered by id.
func (s *Store) ListDocuments() ([]*types.Document, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + documentColumns + " FROM documents ORDER BY document_id")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	docs := []*types.Document{}
	for rows.Next() {
		d, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// scanDocument hydrates one document row via the given scan function.
func scanDocument(scan func(...any) error) (*types.Document, error) {
	var d types.Document
	var docType, mimeType, notes sql.NullString
	var entityType string
	var uploadDate sql.NullString
	var fileSize sql.NullInt64

	if err := scan(&d.ID, &d.DocumentName, &docType, &d.FilePath, &entityType,
		&d.EntityID, &uploadDate, &fileSize, &mimeType, &notes); err != nil {
		return nil, err
	}

	d.DocumentType = docType.String
	d.MimeType = mimeType.String
	d.Notes = notes.String
	d.FileSize = fileSize.Int64

	kind, err := types.ParseEntityKind(entityType)
	if err != nil {
		return nil, fmt.Errorf("document %d has unknown entity type %q", d.ID, entityType)
	}
	d.EntityType = kind

	if d.UploadDate, err = scanTime(uploadDate); err != nil {
		return nil, err
	}
	return &d, nil
}
