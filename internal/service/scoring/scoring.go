package scoring

import (
	"math"
	"sort"

	"dispatch/internal/entities"
)

const (
	earthRadiusKm = 6371.0
	maxRating     = 5.0

	DefaultMaxRadiusKm         = 10.0
	DefaultMaxConcurrentOrders = 3
	DefaultMaxResponseSeconds  = 300.0
)

type Config struct {
	MaxRadiusKm         float64
	MaxConcurrentOrders int64
	MaxResponseSeconds  float64
}

// Engine считает пригодность курьера для заказа. Не ходит в хранилище
// и ничего не меняет: результат зависит только от аргументов.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	if cfg.MaxRadiusKm <= 0 {
		cfg.MaxRadiusKm = DefaultMaxRadiusKm
	}
	if cfg.MaxConcurrentOrders <= 0 {
		cfg.MaxConcurrentOrders = DefaultMaxConcurrentOrders
	}
	if cfg.MaxResponseSeconds <= 0 {
		cfg.MaxResponseSeconds = DefaultMaxResponseSeconds
	}
	return &Engine{cfg: cfg}
}

// Score взвешенная сумма четырех нормированных оценок, результат в [0, 1].
func (e *Engine) Score(courier entities.Courier, order entities.Order, weights entities.DispatchWeights) float64 {
	score := weights.Distance*e.distanceScore(courier, order) +
		weights.Rating*ratingScore(courier) +
		weights.Workload*e.workloadScore(courier) +
		weights.Response*e.responseScore(courier)

	return clamp01(score)
}

// Rank сортирует кандидатов по убыванию оценки. При равенстве выше
// тот, у кого больше рейтинг, затем меньший id. Входной срез не меняется.
func (e *Engine) Rank(
	candidates []entities.Courier,
	order entities.Order,
	weights entities.DispatchWeights,
) []entities.ScoredCourier {
	ranked := make([]entities.ScoredCourier, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, entities.ScoredCourier{
			Courier: c,
			Score:   e.Score(c, order, weights),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Courier.Rating != b.Courier.Rating {
			return a.Courier.Rating > b.Courier.Rating
		}
		return a.Courier.ID < b.Courier.ID
	})

	return ranked
}

// курьер без известной позиции получает 0 за расстояние
func (e *Engine) distanceScore(courier entities.Courier, order entities.Order) float64 {
	target := order.TargetLocation()
	if courier.Location == nil || target == nil {
		return 0
	}
	distance := Haversine(*courier.Location, *target)
	return 1 - math.Min(distance/e.cfg.MaxRadiusKm, 1)
}

func ratingScore(courier entities.Courier) float64 {
	return clamp01(courier.Rating / maxRating)
}

func (e *Engine) workloadScore(courier entities.Courier) float64 {
	load := float64(courier.ActiveOrderCount) / float64(e.cfg.MaxConcurrentOrders)
	return 1 - clamp01(load)
}

func (e *Engine) responseScore(courier entities.Courier) float64 {
	return 1 - clamp01(courier.AvgResponseSeconds/e.cfg.MaxResponseSeconds)
}

// Haversine расстояние по большому кругу в километрах.
func Haversine(a, b entities.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
