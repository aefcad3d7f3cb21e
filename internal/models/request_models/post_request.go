package request_models

// CreatePostForm is bound from multipart/form-data; the image is read separately.
type CreatePostForm struct {
	Caption string   `form:"caption"`
	Tags    []string `form:"tags"`
}
