// Command scenelink reconciles asset identifiers in a scene document with an
// entity registry and writes the matches back as scene attributes.
package main
