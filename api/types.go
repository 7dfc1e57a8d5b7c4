// Package api declares the request and response types of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

// SeatConflictResponse is the 409 payload of a failed reservation; Conflicts
// lists exactly the requested seats that were already taken.
type SeatConflictResponse struct {
	Message   string `json:"message"`
	Conflicts []int  `json:"conflicts"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserSummary struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	BookingCount int    `json:"bookingCount"`
}

type UserListResponse struct {
	Users    []UserSummary `json:"users"`
	Metadata *Metadata     `json:"metadata,omitempty"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,password"`
}

type GenreRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type GenreResponse struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type MovieRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Language    string `json:"language" validate:"max=50"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
	PosterUrl   string `json:"posterUrl" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=2000"`
	GenreIds    []int  `json:"genreIds" validate:"dive,gt=0"`
}

type MovieResponse struct {
	Id          int             `json:"id"`
	Name        string          `json:"name"`
	Language    string          `json:"language"`
	Duration    int             `json:"duration"`
	PosterUrl   string          `json:"posterUrl"`
	Description string          `json:"description"`
	Genres      []GenreResponse `json:"genres"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata *Metadata       `json:"metadata,omitempty"`
}

type TheatreRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	City    string `json:"city" validate:"required,max=100"`
	Address string `json:"address" validate:"max=500"`
	UserId  int    `json:"userId" validate:"required,gt=0"`
}

type TheatreResponse struct {
	Id      int    `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	UserId  int    `json:"userId"`
}

type TheatreListResponse struct {
	Theatres []TheatreResponse `json:"theatres"`
	Metadata *Metadata         `json:"metadata,omitempty"`
}

type ScreenRequest struct {
	TheatreId  int `json:"theatreId" validate:"required,gt=0"`
	ScreenNo   int `json:"screenNo" validate:"required,gt=0"`
	TotalSeats int `json:"totalSeats" validate:"required,gt=0,lte=1000"`
}

type ScreenResponse struct {
	Id         int `json:"id"`
	TheatreId  int `json:"theatreId"`
	ScreenNo   int `json:"screenNo"`
	TotalSeats int `json:"totalSeats"`
}

type ScreenListResponse struct {
	Screens []ScreenResponse `json:"screens"`
}

type ShowtimeRequest struct {
	MovieId  int             `json:"movieId" validate:"required,gt=0"`
	ScreenId int             `json:"screenId" validate:"required,gt=0"`
	Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string          `json:"time" validate:"required,datetime=15:04"`
	Price    decimal.Decimal `json:"price"`
}

type ShowtimeResponse struct {
	Id       int             `json:"id"`
	MovieId  int             `json:"movieId"`
	ScreenId int             `json:"screenId"`
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	Price    decimal.Decimal `json:"price"`
}

type ShowtimeDetailResponse struct {
	ShowtimeResponse
	MovieName     string `json:"movieName"`
	BookingsCount int    `json:"bookingsCount"`
}

type ShowtimeListResponse struct {
	Showtimes []ShowtimeDetailResponse `json:"showtimes"`
}

type DeleteShowtimesRequest struct {
	Ids []int `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type DeleteShowtimesResponse struct {
	Deactivated int `json:"deactivated"`
	Requested   int `json:"requested"`
}

type ExpireShowtimesResponse struct {
	Expired int64 `json:"expired"`
}

type SeatMapResponse struct {
	ShowId            int             `json:"showId"`
	Date              string          `json:"date"`
	Time              string          `json:"time"`
	Price             decimal.Decimal `json:"price"`
	ScreenNo          int             `json:"screenNo"`
	Theatre           string          `json:"theatre"`
	TotalSeats        int             `json:"totalSeats"`
	MyBookedSeats     []int           `json:"myBookedSeats"`
	OthersBookedSeats []int           `json:"othersBookedSeats"`
}

type BookedSeatsResponse struct {
	ShowId int   `json:"showId"`
	Seats  []int `json:"seats"`
}

type CreateBookingRequest struct {
	UserId        int    `json:"userId" validate:"required,gt=0"`
	ShowId        int    `json:"showId" validate:"required,gt=0"`
	SeatNos       []int  `json:"seatNos"`
	BookingType   string `json:"bookingType" validate:"max=50"`
	PaymentStatus string `json:"paymentStatus" validate:"required,max=50"`
}

type BookingResponse struct {
	BookingId      int   `json:"bookingId"`
	ConfirmedSeats []int `json:"confirmedSeats"`
}

type CancelBookingResponse struct {
	BookingId int    `json:"bookingId"`
	Message   string `json:"message"`
}

type BookingSummaryResponse struct {
	Id            int       `json:"id"`
	UserId        int       `json:"userId"`
	BookingType   string    `json:"bookingType"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	SeatNos       []int     `json:"seatNos"`
	MovieName     string    `json:"movieName"`
	UserName      string    `json:"userName"`
}

type BookingListResponse struct {
	Bookings []BookingSummaryResponse `json:"bookings"`
	Metadata *Metadata                `json:"metadata,omitempty"`
}
