// Package attributes implements the view-attribute pipeline: a process-wide
// id interner, per-view-class attribute handlers with a preprocess/
// postprocess/apply/reset contract, composite attributes assembled from
// parts, and a transaction scope batching applications (spec §4.9).
package attributes

import "sync"

// ID is a process-wide, stable-for-the-process-lifetime attribute
// identifier, ported from AttributeIds.hpp.
type ID int32

// Reserved default attribute ids, fixed for the process lifetime, mirroring
// DefaultAttribute in AttributeIds.hpp.
const (
	IDInvalid ID = iota
	IDID
	IDElementTag
	IDClass
	IDStyle
	IDTranslationX
	IDTranslationY
	IDContentOffsetX
	IDContentOffsetY
	IDLazyLayout
	IDValue
	IDPlaceholder
	IDSrc
	IDOpacity
	IDEnabled
	IDAccessibilityID

	firstDynamicID
)

var defaultNames = map[ID]string{
	IDID:              "id",
	IDElementTag:      "elementTag",
	IDClass:           "class",
	IDStyle:           "style",
	IDTranslationX:    "translationX",
	IDTranslationY:    "translationY",
	IDContentOffsetX:  "contentOffsetX",
	IDContentOffsetY:  "contentOffsetY",
	IDLazyLayout:      "lazyLayout",
	IDValue:           "value",
	IDPlaceholder:     "placeholder",
	IDSrc:             "src",
	IDOpacity:         "opacity",
	IDEnabled:         "enabled",
	IDAccessibilityID: "accessibilityId",
}

// Ids is the process-wide monotonic name<->id interner. The zero value is
// ready to use (reserved default ids are populated lazily on first use).
type Ids struct {
	mu       sync.Mutex
	byName   map[string]ID
	byID     map[ID]string
	nextID   ID
	initOnce sync.Once
}

func (ids *Ids) ensureInit() {
	ids.initOnce.Do(func() {
		ids.byName = make(map[string]ID, len(defaultNames))
		ids.byID = make(map[ID]string, len(defaultNames))
		for id, name := range defaultNames {
			ids.byName[name] = id
			ids.byID[id] = name
		}
		ids.nextID = firstDynamicID
	})
}

// IDForName returns the id for name, interning a new one if name hasn't
// been seen before.
func (ids *Ids) IDForName(name string) ID {
	ids.ensureInit()
	ids.mu.Lock()
	defer ids.mu.Unlock()
	if id, ok := ids.byName[name]; ok {
		return id
	}
	id := ids.nextID
	ids.nextID++
	ids.byName[name] = id
	ids.byID[id] = name
	return id
}

// NameForID returns the name registered for id, or "" if none.
func (ids *Ids) NameForID(id ID) string {
	ids.ensureInit()
	ids.mu.Lock()
	defer ids.mu.Unlock()
	return ids.byID[id]
}

// IDsForNames interns a batch of names at once.
func (ids *Ids) IDsForNames(names []string) []ID {
	out := make([]ID, len(names))
	for i, n := range names {
		out[i] = ids.IDForName(n)
	}
	return out
}

// defaultIds is the shared process-wide interner most callers use.
var defaultIds Ids

// IDForName interns name against the process-wide default interner.
func IDForName(name string) ID { return defaultIds.IDForName(name) }

// NameForID looks up name against the process-wide default interner.
func NameForID(id ID) string { return defaultIds.NameForID(id) }
