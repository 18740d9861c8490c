package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/ArjunKaliyath/socials/imagestore"
	"github.com/ArjunKaliyath/socials/model"
	"github.com/ArjunKaliyath/socials/realtime"
	"github.com/ArjunKaliyath/socials/server/apperr"
	"github.com/ArjunKaliyath/socials/server/middlewares"
	Logger "github.com/ArjunKaliyath/socials/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	// postsPerPage is the fixed feed page size.
	postsPerPage = 2

	// minFieldLength applies to post titles and contents after trimming.
	minFieldLength = 5

	// postsEvent is the realtime event name for all post mutations.
	postsEvent = "posts"
)

// postEvent is the broadcast payload for a post mutation. Post carries the
// full post on create/update and just the post id on delete. Creator is only
// set on create.
type postEvent struct {
	Action  string      `json:"action"`
	Post    interface{} `json:"post"`
	Creator interface{} `json:"creator,omitempty"`
}

// creatorSummary is the slim creator reference embedded in create responses
// and broadcasts.
type creatorSummary struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// FeedHandler serves the post CRUD and user status routes. Every route behind
// it requires the JWT middleware to have resolved a user id.
type FeedHandler struct {
	db     *gorm.DB
	hub    *realtime.Hub
	images imagestore.Store
}

func NewFeedHandler(db *gorm.DB, hub *realtime.Hub, images imagestore.Store) *FeedHandler {
	if hub == nil {
		// A nil hub is a wiring bug: mutations must be able to broadcast.
		panic("feed handler constructed without a realtime hub")
	}
	return &FeedHandler{db: db, hub: hub, images: images}
}

// GetPosts returns one page of the global feed in creation order, together
// with the total post count. The feed is not filtered by creator: every
// authenticated caller sees all posts.
func (h *FeedHandler) GetPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var totalItems int64
	if err := h.db.Model(&model.Post{}).Count(&totalItems).Error; err != nil {
		apperr.Abort(c, errors.Wrap(err, "fail to count posts"))
		return
	}

	// Initialized so an empty page serializes as [] instead of null.
	posts := []model.Post{}
	res := h.db.Preload("Creator").
		Order("cursor asc").
		Offset((page - 1) * postsPerPage).
		Limit(postsPerPage).
		Find(&posts)
	if res.Error != nil {
		apperr.Abort(c, errors.Wrap(res.Error, "fail to list posts"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Fetched posts successfully.",
		"posts":      posts,
		"totalItems": totalItems,
	})
}

// CreatePost validates the multipart payload, stores the uploaded image,
// persists the post and broadcasts it. Validation failures never reach the
// store; the broadcast only happens after the insert commits.
func (h *FeedHandler) CreatePost(c *gin.Context) {
	userId := middlewares.UserId(c)

	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(c.PostForm("content"))
	if len(title) < minFieldLength || len(content) < minFieldLength {
		apperr.Abort(c, apperr.Validation("Validation failed, entered data is incorrect.", nil))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperr.Abort(c, apperr.Validation("No image provided.", nil))
		return
	}
	imageUrl, err := h.saveImage(fileHeader)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	// The creator's name is embedded in both the response and the broadcast,
	// so the user record must resolve first.
	var user model.User
	res := h.db.Where("id = ?", userId).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			apperr.Abort(c, apperr.NotFound("User not found."))
			return
		}
		apperr.Abort(c, errors.Wrap(res.Error, "fail to load creator"))
		return
	}

	post := model.Post{
		Id:        uuid.New().String(),
		Title:     title,
		Content:   content,
		ImageUrl:  imageUrl,
		CreatorID: userId,
	}
	if err := h.db.Create(&post).Error; err != nil {
		apperr.Abort(c, errors.Wrap(err, "fail to create post"))
		return
	}

	creator := creatorSummary{Id: user.Id, Name: user.Name}
	h.hub.Emit(postsEvent, postEvent{Action: "create", Post: post, Creator: creator})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully!",
		"post":    post,
		"creator": creator,
	})
}

// GetPost returns a single post by id.
func (h *FeedHandler) GetPost(c *gin.Context) {
	post, err := h.loadPost(c.Param("postId"))
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post fetched.", "post": post})
}

// postUpdate holds the mutable post fields applied during an update.
type postUpdate struct {
	Title    string
	Content  string
	ImageUrl string
}

// UpdatePost edits a post owned by the caller. The image either stays (its
// current path echoed in the "image" form field) or is replaced by a new
// upload, in which case the old file is released best-effort.
func (h *FeedHandler) UpdatePost(c *gin.Context) {
	userId := middlewares.UserId(c)

	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(c.PostForm("content"))
	if len(title) < minFieldLength || len(content) < minFieldLength {
		apperr.Abort(c, apperr.Validation("Validation failed, entered data is incorrect.", nil))
		return
	}

	imageUrl := c.PostForm("image")
	if fileHeader, err := c.FormFile("image"); err == nil {
		imageUrl, err = h.saveImage(fileHeader)
		if err != nil {
			apperr.Abort(c, err)
			return
		}
	}
	if imageUrl == "" {
		apperr.Abort(c, apperr.Validation("No image file picked.", nil))
		return
	}

	post, err := h.loadPost(c.Param("postId"))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if post.CreatorID != userId {
		apperr.Abort(c, apperr.Forbidden("Not authorized to edit this post."))
		return
	}

	oldImageUrl := post.ImageUrl
	if err := copier.Copy(post, &postUpdate{Title: title, Content: content, ImageUrl: imageUrl}); err != nil {
		apperr.Abort(c, errors.Wrap(err, "fail to apply post update"))
		return
	}
	if err := h.db.Save(post).Error; err != nil {
		apperr.Abort(c, errors.Wrap(err, "fail to update post"))
		return
	}

	if imageUrl != oldImageUrl {
		h.clearImage(oldImageUrl)
	}

	h.hub.Emit(postsEvent, postEvent{Action: "update", Post: post})

	c.JSON(http.StatusOK, gin.H{"message": "Post updated!", "post": post})
}

// DeletePost removes a post owned by the caller, releases its image file and
// broadcasts the deletion. The row delete runs in a transaction so any future
// bookkeeping on the owner side stays atomic with it.
func (h *FeedHandler) DeletePost(c *gin.Context) {
	userId := middlewares.UserId(c)
	postId := c.Param("postId")

	post, err := h.loadPost(postId)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if post.CreatorID != userId {
		apperr.Abort(c, apperr.Forbidden("Not authorized to delete this post."))
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&model.Post{}, "id = ?", postId).Error
	})
	if err != nil {
		apperr.Abort(c, errors.Wrap(err, "fail to delete post"))
		return
	}

	// Only after the commit: the image release is best-effort and must never
	// resurrect a half-deleted post, and the broadcast must reflect a state
	// the store has already reached.
	h.clearImage(post.ImageUrl)
	h.hub.Emit(postsEvent, postEvent{Action: "delete", Post: postId})

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted!"})
}

// GetStatus returns the caller's status line.
func (h *FeedHandler) GetStatus(c *gin.Context) {
	user, err := h.loadUser(middlewares.UserId(c))
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": user.Status})
}

type statusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus replaces the caller's status line.
func (h *FeedHandler) UpdateStatus(c *gin.Context) {
	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Validation("Validation failed, entered data is incorrect.", err.Error()))
		return
	}
	input.Status = strings.TrimSpace(input.Status)
	if input.Status == "" {
		apperr.Abort(c, apperr.Validation("Validation failed, entered data is incorrect.", nil))
		return
	}

	user, err := h.loadUser(middlewares.UserId(c))
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	user.Status = input.Status
	if err := h.db.Save(user).Error; err != nil {
		apperr.Abort(c, errors.Wrap(err, "fail to update status"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated."})
}

func (h *FeedHandler) loadPost(postId string) (*model.Post, error) {
	var post model.Post
	res := h.db.Where("id = ?", postId).First(&post)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Could not find post.")
		}
		return nil, errors.Wrap(res.Error, "fail to load post")
	}
	return &post, nil
}

func (h *FeedHandler) loadUser(userId string) (*model.User, error) {
	var user model.User
	res := h.db.Where("id = ?", userId).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, errors.Wrap(res.Error, "fail to load user")
	}
	return &user, nil
}

// saveImage streams an uploaded file into the image store, translating an
// unsupported type into a validation failure.
func (h *FeedHandler) saveImage(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "fail to open uploaded image")
	}
	defer src.Close()

	imageUrl, err := h.images.Save(src, fileHeader.Filename)
	if errors.Is(err, imagestore.ErrUnsupportedType) {
		return "", apperr.Validation("Unsupported image type, only png/jpg/jpeg are accepted.", nil)
	}
	if err != nil {
		return "", errors.Wrap(err, "fail to store uploaded image")
	}
	return imageUrl, nil
}

// clearImage releases a stored image file. Failures are logged, never
// surfaced: a leaked file must not fail an otherwise committed mutation.
func (h *FeedHandler) clearImage(imageUrl string) {
	if imageUrl == "" {
		return
	}
	if err := h.images.Delete(imageUrl); err != nil {
		Logger.Log.Warnf("fail to delete image %s: %v", imageUrl, err)
	}
}
