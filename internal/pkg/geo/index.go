package geo

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"route-engine/internal/entities"
)

const (
	treeMinChildren = 25
	treeMaxChildren = 50
	pointTolerance  = 1e-6
)

type point struct {
	key string
	loc entities.Location
}

func (p point) Bounds() rtreego.Rect {
	return rtreego.Point{p.loc.Lat, p.loc.Lon}.ToRect(pointTolerance)
}

// Index пространственный индекс точек с ключом. Не потокобезопасен.
type Index struct {
	tree *rtreego.Rtree
	size int
}

func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(2, treeMinChildren, treeMaxChildren)}
}

func (i *Index) Insert(key string, loc entities.Location) {
	i.tree.Insert(point{key: key, loc: loc})
	i.size++
}

func (i *Index) Len() int {
	return i.size
}

// Hit ключ и расстояние до него.
type Hit struct {
	Key   string
	Miles float64
}

// Within все ключи в радиусе miles от loc, ближайшие первыми.
func (i *Index) Within(loc entities.Location, miles float64) []Hit {
	if i.size == 0 {
		return nil
	}
	dLat, dLon := degreesFor(loc.Lat, miles)
	rect, err := rtreego.NewRect(
		rtreego.Point{loc.Lat - dLat, loc.Lon - dLon},
		[]float64{2 * dLat, 2 * dLon},
	)
	if err != nil {
		return nil
	}

	var hits []Hit
	for _, obj := range i.tree.SearchIntersect(rect) {
		p := obj.(point)
		d := Haversine(loc, p.loc)
		if d <= miles {
			hits = append(hits, Hit{Key: p.key, Miles: d})
		}
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Miles != hits[b].Miles {
			return hits[a].Miles < hits[b].Miles
		}
		return hits[a].Key < hits[b].Key
	})
	return hits
}
