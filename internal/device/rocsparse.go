//go:build rocm

package device

/*
#cgo LDFLAGS: -lrocsparse -lamdhip64
#include <hip/hip_runtime_api.h>
#include <rocsparse/rocsparse.h>

static const char* hipErrStr(hipError_t e) { return hipGetErrorString(e); }

typedef struct {
    rocsparse_handle handle;
    rocsparse_mat_descr descr;
    int ok;
} dev_ctx;

static dev_ctx G = {0};

static const char* dev_init() {
    if (G.ok) return NULL;
    if (rocsparse_create_handle(&G.handle) != rocsparse_status_success) return "rocsparse_create_handle failed";
    if (rocsparse_create_mat_descr(&G.descr) != rocsparse_status_success) {
        rocsparse_destroy_handle(G.handle);
        return "rocsparse_create_mat_descr failed";
    }
    G.ok = 1;
    return NULL;
}

static void dev_close() {
    if (G.ok) {
        rocsparse_destroy_mat_descr(G.descr);
        rocsparse_destroy_handle(G.handle);
        G.ok = 0;
    }
}

static const char* dev_bsrmm_f64(int dir, int mb, int n, int kb, int nnzb,
                                 double alpha, const double* val, const int* row_ptr, const int* col_ind,
                                 int block_dim, const double* B, int ldb, double beta, double* C, int ldc) {
    if (!G.ok) return "not initialized";
    size_t sz_row_ptr = sizeof(int) * (size_t)(mb + 1);
    size_t sz_col_ind = sizeof(int) * (size_t)nnzb;
    size_t sz_val     = sizeof(double) * (size_t)nnzb * (size_t)block_dim * (size_t)block_dim;
    size_t sz_B       = sizeof(double) * (size_t)ldb * (size_t)n;
    size_t sz_C       = sizeof(double) * (size_t)ldc * (size_t)n;
    int *d_row_ptr = NULL, *d_col_ind = NULL;
    double *d_val = NULL, *d_B = NULL, *d_C = NULL;
    hipError_t he;
    he = hipMalloc((void**)&d_row_ptr, sz_row_ptr); if (he != hipSuccess) return hipErrStr(he);
    he = hipMalloc((void**)&d_col_ind, sz_col_ind); if (he != hipSuccess) { hipFree(d_row_ptr); return hipErrStr(he); }
    he = hipMalloc((void**)&d_val, sz_val); if (he != hipSuccess) { hipFree(d_row_ptr); hipFree(d_col_ind); return hipErrStr(he); }
    he = hipMalloc((void**)&d_B, sz_B); if (he != hipSuccess) { hipFree(d_row_ptr); hipFree(d_col_ind); hipFree(d_val); return hipErrStr(he); }
    he = hipMalloc((void**)&d_C, sz_C); if (he != hipSuccess) { hipFree(d_row_ptr); hipFree(d_col_ind); hipFree(d_val); hipFree(d_B); return hipErrStr(he); }
    const char* msg = NULL;
    he = hipMemcpy(d_row_ptr, row_ptr, sz_row_ptr, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he);
    if (!msg) { he = hipMemcpy(d_col_ind, col_ind, sz_col_ind, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he); }
    if (!msg) { he = hipMemcpy(d_val, val, sz_val, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he); }
    if (!msg) { he = hipMemcpy(d_B, B, sz_B, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he); }
    if (!msg) { he = hipMemcpy(d_C, C, sz_C, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he); }
    if (!msg) {
        rocsparse_status st = rocsparse_dbsrmm(G.handle,
                                               dir == 0 ? rocsparse_direction_row : rocsparse_direction_column,
                                               rocsparse_operation_none,
                                               rocsparse_operation_none,
                                               mb, n, kb, nnzb,
                                               &alpha, G.descr,
                                               d_val, d_row_ptr, d_col_ind, block_dim,
                                               d_B, ldb, &beta, d_C, ldc);
        if (st != rocsparse_status_success) msg = "rocsparse_dbsrmm failed";
    }
    if (!msg) { he = hipMemcpy(C, d_C, sz_C, hipMemcpyDeviceToHost); if (he != hipSuccess) msg = hipErrStr(he); }
    hipFree(d_row_ptr); hipFree(d_col_ind); hipFree(d_val); hipFree(d_B); hipFree(d_C);
    return msg;
}

static const char* dev_bsrmv_f64(int dir, int mb, int nb, int nnzb,
                                 double alpha, const double* val, const int* row_ptr, const int* col_ind,
                                 int block_dim, const double* x, double beta, double* y) {
    if (!G.ok) return "not initialized";
    size_t sz_row_ptr = sizeof(int) * (size_t)(mb + 1);
    size_t sz_col_ind = sizeof(int) * (size_t)nnzb;
    size_t sz_val     = sizeof(double) * (size_t)nnzb * (size_t)block_dim * (size_t)block_dim;
    size_t sz_x       = sizeof(double) * (size_t)nb * (size_t)block_dim;
    size_t sz_y       = sizeof(double) * (size_t)mb * (size_t)block_dim;
    int *d_row_ptr = NULL, *d_col_ind = NULL;
    double *d_val = NULL, *d_x = NULL, *d_y = NULL;
    hipError_t he;
    he = hipMalloc((void**)&d_row_ptr, sz_row_ptr); if (he != hipSuccess) return hipErrStr(he);
    he = hipMalloc((void**)&d_col_ind, sz_col_ind); if (he != hipSuccess) { hipFree(d_row_ptr); return hipErrStr(he); }
    he = hipMalloc((void**)&d_val, sz_val); if (he != hipSuccess) { hipFree(d_row_ptr); hipFree(d_col_ind); return hipErrStr(he); }
    he = hipMalloc((void**)&d_x, sz_x); if (he != hipSuccess) { hipFree(d_row_ptr); hipFree(d_col_ind); hipFree(d_val); return hipErrStr(he); }
    he = hipMalloc((void**)&d_y, sz_y); if (he != hipSuccess) { hipFree(d_row_ptr); hipFree(d_col_ind); hipFree(d_val); hipFree(d_x); return hipErrStr(he); }
    const char* msg = NULL;
    he = hipMemcpy(d_row_ptr, row_ptr, sz_row_ptr, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he);
    if (!msg) { he = hipMemcpy(d_col_ind, col_ind, sz_col_ind, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he); }
    if (!msg) { he = hipMemcpy(d_val, val, sz_val, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he); }
    if (!msg) { he = hipMemcpy(d_x, x, sz_x, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he); }
    if (!msg) { he = hipMemcpy(d_y, y, sz_y, hipMemcpyHostToDevice); if (he != hipSuccess) msg = hipErrStr(he); }
    if (!msg) {
        rocsparse_status st = rocsparse_dbsrmv(G.handle,
                                               dir == 0 ? rocsparse_direction_row : rocsparse_direction_column,
                                               rocsparse_operation_none,
                                               mb, nb, nnzb,
                                               &alpha, G.descr,
                                               d_val, d_row_ptr, d_col_ind, block_dim,
                                               d_x, &beta, d_y);
        if (st != rocsparse_status_success) msg = "rocsparse_dbsrmv failed";
    }
    if (!msg) { he = hipMemcpy(y, d_y, sz_y, hipMemcpyDeviceToHost); if (he != hipSuccess) msg = hipErrStr(he); }
    hipFree(d_row_ptr); hipFree(d_col_ind); hipFree(d_val); hipFree(d_x); hipFree(d_y);
    return msg;
}
*/
import "C"
import "unsafe"

var available bool

func init() {
	if C.dev_init() == nil {
		available = true
	}
}

// Available reports whether the rocSPARSE handle came up (build tag + init ok).
func Available() bool { return available }

// BsrmmF64 offloads C = alpha*A*B + beta*C for a BSR A and column-major B, C.
// Host buffers are copied to the device, rocsparse_dbsrmm runs, and C is
// copied back. Returns false on any failure so the caller can fall back.
func BsrmmF64(dir, mb, n, kb, nnzb int, alpha float64, val []float64, rowPtr, colInd []int32, blockDim int, B []float64, ldb int, beta float64, Cm []float64, ldc int) bool {
	if !available { return false }
	if len(rowPtr) != mb+1 || len(colInd) != nnzb || len(val) != nnzb*blockDim*blockDim { return false }
	if len(B) < ldb*n || len(Cm) < ldc*n { return false }
	if nnzb == 0 || n == 0 { return false }
	err := C.dev_bsrmm_f64(C.int(dir), C.int(mb), C.int(n), C.int(kb), C.int(nnzb),
		C.double(alpha), (*C.double)(unsafe.Pointer(&val[0])),
		(*C.int)(unsafe.Pointer(&rowPtr[0])), (*C.int)(unsafe.Pointer(&colInd[0])),
		C.int(blockDim), (*C.double)(unsafe.Pointer(&B[0])), C.int(ldb),
		C.double(beta), (*C.double)(unsafe.Pointer(&Cm[0])), C.int(ldc))
	return err == nil
}

// BsrmvF64 offloads y = alpha*A*x + beta*y. Returns false on any failure.
func BsrmvF64(dir, mb, nb, nnzb int, alpha float64, val []float64, rowPtr, colInd []int32, blockDim int, x []float64, beta float64, y []float64) bool {
	if !available { return false }
	if len(rowPtr) != mb+1 || len(colInd) != nnzb || len(val) != nnzb*blockDim*blockDim { return false }
	if len(x) < nb*blockDim || len(y) < mb*blockDim { return false }
	if nnzb == 0 { return false }
	err := C.dev_bsrmv_f64(C.int(dir), C.int(mb), C.int(nb), C.int(nnzb),
		C.double(alpha), (*C.double)(unsafe.Pointer(&val[0])),
		(*C.int)(unsafe.Pointer(&rowPtr[0])), (*C.int)(unsafe.Pointer(&colInd[0])),
		C.int(blockDim), (*C.double)(unsafe.Pointer(&x[0])),
		C.double(beta), (*C.double)(unsafe.Pointer(&y[0])))
	return err == nil
}

func Close() { C.dev_close() }
