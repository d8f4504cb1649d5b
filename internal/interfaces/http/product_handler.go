package http

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos (protegido).
type ProductHandler struct {
	uc       *catalog.ProductUseCase
	mediaDir string
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase, mediaDir string) *ProductHandler {
	return &ProductHandler{uc: uc, mediaDir: mediaDir}
}

// parseInput arma el ProductInput desde el formulario multipart. Quantity queda
// nil si el campo no llegó o no es numérico; la validación la decide el caso de uso.
func (h *ProductHandler) parseInput(c *fiber.Ctx) (dto.ProductInput, error) {
	in := dto.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Location:    c.FormValue("location"),
	}
	if raw := c.FormValue("quantity"); raw != "" {
		if qty, err := strconv.ParseInt(raw, 10, 64); err == nil {
			in.Quantity = &qty
		}
	}
	// Adjuntos: solo se guardan si llegó un archivo nuevo
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		path, err := h.saveAttachment(c, fh, "images")
		if err != nil {
			return in, err
		}
		in.ImagePath = path
	}
	if fh, err := c.FormFile("datasheet"); err == nil && fh != nil {
		path, err := h.saveAttachment(c, fh, "datasheets")
		if err != nil {
			return in, err
		}
		in.DatasheetPath = path
	}
	return in, nil
}

// saveAttachment guarda el archivo subido bajo <mediaDir>/<subdir> con nombre
// único. SaveFile no crea directorios intermedios, así que se crean antes.
func (h *ProductHandler) saveAttachment(c *fiber.Ctx, fh *multipart.FileHeader, subdir string) (string, error) {
	dir := filepath.Join(h.mediaDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.New().String()+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

// removeAttachments borra los adjuntos ya guardados cuando la operación no
// prosperó, para no dejar archivos huérfanos en el directorio de medios.
func removeAttachments(in dto.ProductInput) {
	if in.ImagePath != "" {
		_ = os.Remove(in.ImagePath)
	}
	if in.DatasheetPath != "" {
		_ = os.Remove(in.DatasheetPath)
	}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		removeAttachments(in)
		return writeError(c, err)
	}
	product, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		removeAttachments(in)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// Update godoc
// @Summary      Editar producto
// @Tags         products
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		removeAttachments(in)
		return writeError(c, err)
	}
	product, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		removeAttachments(in)
		return writeError(c, err)
	}
	return c.JSON(product)
}

// Delete godoc
// @Summary      Eliminar producto (borra sus movimientos en cascada)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

// List godoc
// @Summary      Listar productos (filtro opcional por nombre)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Subcadena del nombre, sin distinguir mayúsculas"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.List(c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// Detail godoc
// @Summary      Detalle de producto con entradas, salidas y saldo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	detail, err := h.uc.Detail(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(detail)
}
