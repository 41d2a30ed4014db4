package rowfile

// Vector2 is a two-component float vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a three-component float vector.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is a four-component float vector.
type Vector4 struct {
	X, Y, Z, W float32
}

// Quaternion is a rotation stored as x, y, z, w.
type Quaternion struct {
	X, Y, Z, W float32
}

// Color is a linear color with float channels.
type Color struct {
	R, G, B, A float32
}

// Color32 is a color with 8-bit channels.
type Color32 struct {
	R, G, B, A uint8
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float32
}

// Pair is one dictionary entry.
type Pair struct {
	Key   string
	Value string
}
