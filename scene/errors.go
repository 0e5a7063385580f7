package scene

// Error types returned by the scene package. Use errors.Type or errors.IsType
// from github.com/aukilabs/go-tooling/pkg/errors to classify them.
const (
	ErrTypeInvalidColor            = "invalid-color"
	ErrTypeUnknownMaterialProperty = "unknown-material-property"
	ErrTypeInvalidMaterialValue    = "invalid-material-value"
	ErrTypeGLTFDecode              = "gltf-decode"
	ErrTypeGLTFNoScenes            = "gltf-no-scenes"
)
