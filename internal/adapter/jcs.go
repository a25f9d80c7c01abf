package adapter

import "github.com/gowebpki/jcs"

// JCS canonicalizes JSON documents (RFC 8785) so equal events hash equally
//
//go:generate mockgen -source=jcs.go -destination=../mocks/jcs.go -package=mocks -mock_names=JCS=MockJCS
type JCS interface {
	Transform(data []byte) ([]byte, error)
}

// RealJCS implements JCS using the gowebpki/jcs package
type RealJCS struct{}

// NewJCS creates a new real JCS implementation
func NewJCS() JCS {
	return &RealJCS{}
}

func (j *RealJCS) Transform(data []byte) ([]byte, error) {
	return jcs.Transform(data)
}
