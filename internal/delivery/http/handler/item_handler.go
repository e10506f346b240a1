package handler

import (
	"net/http"

	entity "campusx/internal/domain"
	service "campusx/internal/service/postgresql"
	utils "campusx/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemHandler struct {
	itemService *service.ItemService
	uploader    *utils.ImageUploader
}

func NewItemHandler(itemService *service.ItemService, uploader *utils.ImageUploader) *ItemHandler {
	return &ItemHandler{itemService: itemService, uploader: uploader}
}

// @Summary      Post an item
// @Description  Creates a listing with up to 5 photos uploaded to Cloudinary.
// @Tags         Items
// @Accept       multipart/form-data
// @Produce      json
// @Security     ApiKeyAuth
// @Success      201  {object}  service.ItemWithImages
// @Failure      400  {object}  map[string]interface{}
// @Router       /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var input entity.CreateItemInput
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, "invalid form data: "+err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "invalid form data")
		return
	}
	files := form.File["images"]
	if len(files) > 5 {
		badRequest(c, "at most 5 images are allowed")
		return
	}

	var imageURLs []string
	if h.uploader != nil {
		for _, fh := range files {
			file, err := fh.Open()
			if err != nil {
				badRequest(c, "cannot read uploaded image")
				return
			}
			url, err := h.uploader.Upload(c.Request.Context(), file)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "code": codeInternal})
				return
			}
			imageURLs = append(imageURLs, url)
		}
	}

	result, err := h.itemService.CreateItem(userID, input, imageURLs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Item posted.",
		"item":    result.Item,
		"images":  result.Images,
	})
}

// @Summary      Browse items
// @Tags         Items
// @Produce      json
// @Success      200  {array}  entity.Item
// @Router       /items [get]
func (h *ItemHandler) Browse(c *gin.Context) {
	var filter entity.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, "invalid filter")
		return
	}

	items, err := h.itemService.Browse(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary      Item detail
// @Tags         Items
// @Produce      json
// @Success      200  {object}  service.ItemWithImages
// @Failure      404  {object}  map[string]interface{}
// @Router       /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid item id")
		return
	}

	result, err := h.itemService.GetItem(itemID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary      My items
// @Tags         Items
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}  entity.Item
// @Router       /items/my [get]
func (h *ItemHandler) GetMyItems(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	items, err := h.itemService.ListByOwner(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary      Update an item
// @Tags         Items
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  entity.Item
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid item id")
		return
	}

	var input entity.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid input")
		return
	}

	item, err := h.itemService.UpdateItem(userID, itemID, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated.", "item": item})
}

// @Summary      Delete an item
// @Tags         Items
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid item id")
		return
	}

	if err := h.itemService.DeleteItem(userID, itemID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted."})
}
