package dto

type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AvailabilityDTO struct {
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}

type ReservationStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
}

type MenuStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
}

type DashboardStatsDTO struct {
	Reservations ReservationStats `json:"reservations"`
	Menu         MenuStats        `json:"menu"`
}
