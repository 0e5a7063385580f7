package tetraquery

// Error types returned or logged by tetraquery. Use errors.Type or
// errors.IsType from github.com/aukilabs/go-tooling/pkg/errors to classify
// them.
const (
	// ErrTypeInvalidSelector is returned for empty or malformed selectors.
	ErrTypeInvalidSelector = "invalid-selector"

	// ErrTypeNoLoaderRegistered is returned when loading geometry of a type
	// no loader was added for.
	ErrTypeNoLoaderRegistered = "no-loader-registered"

	// ErrTypeConfiguration is returned when dispatching pointer events
	// without a surface or a camera.
	ErrTypeConfiguration = "configuration-error"

	// ErrTypeUnrecognizedMaterialProperty is logged when material settings
	// contain a key the material doesn't have. The key is skipped.
	ErrTypeUnrecognizedMaterialProperty = "unrecognized-material-property"

	// ErrTypeInvalidMaterialValue is logged when a material setting can't
	// be converted to the property's type. The key is skipped.
	ErrTypeInvalidMaterialValue = "invalid-material-value"

	// ErrTypeCallbackFailed is logged when an event callback panics.
	ErrTypeCallbackFailed = "callback-failed"

	// ErrTypeLoadFailed is returned when a loader fails or returns no node.
	ErrTypeLoadFailed = "load-failed"
)
