package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ContainerKind distinguishes the two parallel grouping hierarchies
// a wall can belong to.
type ContainerKind string

const (
	KindClass  ContainerKind = "class"
	KindCourse ContainerKind = "course"
)

// containsID reports whether id is present in ids.
func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// HexIDs converts a list of object ids to their hex representation.
func HexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
