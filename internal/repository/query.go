package repository

import "github.com/igapanovich/biver/internal/repodata"

// Preview returns the filesystem path of target's stored preview blob, or
// RefusalNoPreviewAvailable if it has none.
func (r *Repository) Preview(input string) (string, Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return "", Outcome{}, err
	}

	id, ok := resolveTarget(data, input)
	if !ok {
		return "", Refuse(RefusalInvalidTarget), nil
	}

	v, ok := data.Version(id)
	if !ok || v.PreviewBlobFileName == nil {
		return "", Refuse(RefusalNoPreviewAvailable), nil
	}

	return r.Store.BlobPath(*v.PreviewBlobFileName), Ok(), nil
}

// Version resolves a target and returns the corresponding Version record.
func (r *Repository) Version(input string) (*repodata.Version, Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return nil, Outcome{}, err
	}

	id, ok := resolveTarget(data, input)
	if !ok {
		return nil, Refuse(RefusalInvalidTarget), nil
	}

	v, ok := data.Version(id)
	if !ok {
		return nil, Refuse(RefusalInvalidTarget), nil
	}
	return v, Ok(), nil
}

// Status returns the current metadata document for read-only inspection
// (status/log CLI surfaces read straight from this).
func (r *Repository) Status() (*repodata.RepositoryData, error) {
	return r.readInitializedData()
}
