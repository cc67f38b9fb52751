package icon

// Resource types understood by the Windows loader.
const (
	RT_ICON       = 3
	RT_GROUP_ICON = 14
)

// Updater abstracts the Windows resource-update transaction
// (BeginUpdateResource / UpdateResource / EndUpdateResource) so the commit
// logic can run against a fake in tests.
type Updater interface {
	// Begin opens an update transaction against the given executable.
	Begin(path string) error
	// Update registers one resource of the given type and ID.
	Update(resType, id uint16, data []byte) error
	// End commits the transaction, or discards it when commit is false.
	End(commit bool) error
}
