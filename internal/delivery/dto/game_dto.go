package dto

type CreateGameRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Age      int    `json:"age" validate:"required,min=1,max=99"`
	Category string `json:"category" validate:"max=100"`
}

type UpdateGameRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Age      int    `json:"age" validate:"required,min=1,max=99"`
	Category string `json:"category" validate:"max=100"`
}

type GameResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Age      int    `json:"age"`
	Category string `json:"category"`
}

type GameListResponse struct {
	Games []GameResponse `json:"games"`
	Total int            `json:"total"`
}
