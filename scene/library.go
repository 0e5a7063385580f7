package scene

// Library represents a collection of scenes, Materials, and Cameras, as loaded from a glTF document.
type Library struct {
	Scenes        []*Node              // The root Node of each scene
	ExportedScene *Node                // The scene marked as the default in the document
	Materials     map[string]*Material // A Map of Materials to their names
	Cameras       []*Camera
}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{
		Scenes:    []*Node{},
		Materials: map[string]*Material{},
		Cameras:   []*Camera{},
	}
}

// FindScene searches all scenes in a Library to find the one with the provided name. If a scene with the given name
// isn't found, FindScene will return nil.
func (lib *Library) FindScene(name string) *Node {
	for _, scene := range lib.Scenes {
		if scene.Name() == name {
			return scene
		}
	}
	return nil
}

// FindNode allows you to find a node by name by searching through each of a Library's scenes. If the Node with the
// given name isn't found, FindNode will return nil.
func (lib *Library) FindNode(objectName string) *Node {
	for _, scene := range lib.Scenes {
		var found *Node
		scene.Traverse(func(n *Node) {
			if found == nil && n.Name() == objectName {
				found = n
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}
