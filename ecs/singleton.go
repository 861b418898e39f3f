package ecs

import "fmt"

// SingletonTag names a logical role that at most one entity may play.
type SingletonTag string

const (
	Player   SingletonTag = "Player"
	Lighting SingletonTag = "Lighting"
	Skybox   SingletonTag = "Skybox"
)

var knownSingletons = []SingletonTag{Player, Lighting, Skybox}

// ParseSingletonTag resolves a snapshot tag to a known singleton kind.
func ParseSingletonTag(s string) (SingletonTag, error) {
	for _, tag := range knownSingletons {
		if string(tag) == s {
			return tag, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownSingleton, s)
}

func (t SingletonTag) String() string {
	return string(t)
}
