package redis

const (
	// KeySections holds the JSON snapshot of all bookmark sections.
	KeySections = "mynav:sections"
	// KeyCategories holds the JSON snapshot of all search categories.
	KeyCategories = "mynav:categories"
	// KeySyncSettings holds the JSON snapshot of the cloud sync settings.
	KeySyncSettings = "mynav:sync"
)
